package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/internal/service"
)

// SearchHandler mantiene dependencias para la búsqueda pública.
type SearchHandler struct {
	logger *zap.Logger
	search *service.SearchService
}

func NewSearchHandler(logger *zap.Logger, search *service.SearchService) *SearchHandler {
	return &SearchHandler{
		logger: logger,
		search: search,
	}
}

// Search maneja GET /search?query=. 404 solo cuando ambas categorías vienen vacías.
func (h *SearchHandler) Search(c *gin.Context) {
	res, err := h.search.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	if res.Empty() {
		c.String(http.StatusNotFound, "No users or files found")
		return
	}

	c.HTML(http.StatusOK, "search-results.tmpl", gin.H{
		"user":  currentUserValue(c),
		"users": res.Users,
		"files": res.Files,
	})
}
