// Package docs holds the OpenAPI description served at /swagger and /api/v1/openapi.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/dashboard": {
            "get": {
                "description": "Totals, monthly income vs expenses, expense breakdown by category and goal progress",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get the dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DashboardResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "description": "Get the loaded transaction history with optional filters, newest first as delivered by the store",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "Transaction type (income or expense)", "name": "type", "in": "query"},
                    {"type": "string", "description": "Only transactions with a split in this category", "name": "categoryId", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD), inclusive", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD), inclusive", "name": "endDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TransactionListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            },
            "post": {
                "description": "Validate a transaction with its category splits and submit it to the store",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction creation request", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/transactions/preview": {
            "post": {
                "description": "Report the unassigned remainder and validation problems without saving anything",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Preview a transaction",
                "parameters": [
                    {"description": "Transaction being entered", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.CreateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PreviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/goals": {
            "get": {
                "description": "Get every savings goal with its progress percentage, clamped to 0..100",
                "produces": ["application/json"],
                "tags": ["goals"],
                "summary": "List goals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GoalListResponse"}}
                }
            },
            "post": {
                "description": "Validate a savings goal and submit it to the store. The target date must not be in the past.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["goals"],
                "summary": "Create a goal",
                "parameters": [
                    {"description": "Goal creation request", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.CreateGoalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.GoalResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/categories": {
            "get": {
                "description": "Get the categories in declaration order. The first category of a kind is the default selection.",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "parameters": [
                    {"type": "string", "description": "Category kind (income or expense)", "name": "kind", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.CategoryResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        },
        "/status": {
            "get": {
                "description": "Loading flag, last error message and last successful load time",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Get data status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DataStatusResponse"}}
                }
            }
        },
        "/reload": {
            "post": {
                "description": "Fetch all transactions and goals from the store again. On failure the previous data is kept.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Reload data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DataStatusResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.ValidationError"}}
            }
        },
        "handler.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.SplitRequest": {
            "type": "object",
            "properties": {
                "categoryId": {"type": "string"},
                "amount": {"type": "string"}
            }
        },
        "handler.CreateTransactionRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "description": {"type": "string"},
                "totalAmount": {"type": "string"},
                "type": {"type": "string"},
                "splits": {"type": "array", "items": {"$ref": "#/definitions/handler.SplitRequest"}}
            }
        },
        "handler.SplitResponse": {
            "type": "object",
            "properties": {
                "categoryId": {"type": "string"},
                "categoryName": {"type": "string"},
                "amount": {"type": "string"}
            }
        },
        "handler.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "totalAmount": {"type": "string"},
                "type": {"type": "string"},
                "splits": {"type": "array", "items": {"$ref": "#/definitions/handler.SplitResponse"}}
            }
        },
        "handler.TransactionListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}},
                "totalItems": {"type": "integer"}
            }
        },
        "handler.PreviewResponse": {
            "type": "object",
            "properties": {
                "totalAmount": {"type": "string"},
                "allocated": {"type": "string"},
                "remaining": {"type": "string"},
                "valid": {"type": "boolean"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.ValidationError"}}
            }
        },
        "handler.CreateGoalRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "targetAmount": {"type": "string"},
                "targetDate": {"type": "string"}
            }
        },
        "handler.GoalResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "targetAmount": {"type": "string"},
                "currentAmount": {"type": "string"},
                "remaining": {"type": "string"},
                "targetDate": {"type": "string"},
                "progress": {"type": "string"}
            }
        },
        "handler.GoalListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.GoalResponse"}}
            }
        },
        "handler.CategoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handler.TotalsResponse": {
            "type": "object",
            "properties": {
                "income": {"type": "string"},
                "expenses": {"type": "string"},
                "balance": {"type": "string"}
            }
        },
        "handler.MonthlyFlowResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "income": {"type": "string"},
                "expenses": {"type": "string"}
            }
        },
        "handler.CategoryAmountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "amount": {"type": "string"}
            }
        },
        "handler.StatusResponse": {
            "type": "object",
            "properties": {
                "loading": {"type": "boolean"},
                "error": {"type": "string"},
                "loadedAt": {"type": "string"}
            }
        },
        "handler.DataStatusResponse": {
            "type": "object",
            "properties": {
                "loading": {"type": "boolean"},
                "error": {"type": "string"},
                "loadedAt": {"type": "string"},
                "transactions": {"type": "integer"},
                "goals": {"type": "integer"}
            }
        },
        "handler.DashboardResponse": {
            "type": "object",
            "properties": {
                "totals": {"$ref": "#/definitions/handler.TotalsResponse"},
                "monthly": {"type": "array", "items": {"$ref": "#/definitions/handler.MonthlyFlowResponse"}},
                "expenseBreakdown": {"type": "array", "items": {"$ref": "#/definitions/handler.CategoryAmountResponse"}},
                "goals": {"type": "array", "items": {"$ref": "#/definitions/handler.GoalResponse"}},
                "investmentReminder": {"type": "boolean"},
                "status": {"$ref": "#/definitions/handler.StatusResponse"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fortuna Tracker API",
	Description:      "Personal finance tracker backed by an external finance store: transactions with category splits, savings goals and dashboard aggregates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
