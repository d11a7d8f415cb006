package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and what was loaded at startup
type HealthHandler struct {
	table     RowCounter
	modelKind string
}

// RowCounter is satisfied by the demographics table
type RowCounter interface {
	Len() int
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(table RowCounter, modelKind string) *HealthHandler {
	return &HealthHandler{table: table, modelKind: modelKind}
}

// Health handles GET /health requests
//
//	@Summary	Service health
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	rows := 0
	if h.table != nil {
		rows = h.table.Len()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"demographics_rows": rows,
		"model":             h.modelKind,
	})
}
