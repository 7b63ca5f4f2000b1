package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/assacalos/easyconnect/cmd/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocListsRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	tests := []struct {
		path   string
		method string
	}{
		{"/payments", "post"},
		{"/payments/{id}/{action}", "post"},
		{"/payment-schedules/{id}/generate", "post"},
		{"/installments/{id}/pay", "post"},
		{"/transitions", "post"},
		{"/auth/login", "post"},
	}
	for _, tt := range tests {
		ops, ok := doc.Paths[tt.path]
		if assert.True(t, ok, "missing path %s", tt.path) {
			assert.Contains(t, ops, tt.method, "%s %s", tt.method, tt.path)
		}
	}
}
