package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil)
	req.Host = "localhost:8080"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec["openapi"])

	servers := spec["servers"].([]interface{})
	require.Len(t, servers, 1)
	assert.Equal(t, "http://localhost:8080/api/v1", servers[0].(map[string]interface{})["url"])

	paths := spec["paths"].(map[string]interface{})
	post := paths["/transactions"].(map[string]interface{})["post"].(map[string]interface{})
	_, hasParams := post["parameters"]
	assert.False(t, hasParams, "body parameters move to requestBody")

	body := post["requestBody"].(map[string]interface{})
	schema := body["content"].(map[string]interface{})["application/json"].(map[string]interface{})["schema"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.CreateTransactionRequest", schema["$ref"])

	created := post["responses"].(map[string]interface{})["201"].(map[string]interface{})
	assert.Contains(t, created, "content")
	assert.NotContains(t, created, "schema")

	get := paths["/transactions"].(map[string]interface{})["get"].(map[string]interface{})
	params := get["parameters"].([]interface{})
	first := params[0].(map[string]interface{})
	assert.Equal(t, "query", first["in"])
	assert.Contains(t, first, "schema")
}
