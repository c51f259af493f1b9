package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise-backend/internal/services"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

type SearchHandler struct {
	svc services.SearchService
}

func NewSearchHandler(svc services.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Results []services.ChunkMatch `json:"results"`
}

func (h *SearchHandler) SearchResume(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	query := c.Query("query")
	resumeID := c.Query("resume_id")
	if query == "" || resumeID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SearchHandler.SearchResume", "query and resume_id are required", nil))
		return
	}

	topK := 0
	if v := c.Query("top_k"); v != "" {
		topK, _ = strconv.Atoi(v)
	}

	results, err := h.svc.Search(c.Request.Context(), userID, resumeID, query, topK)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Query: query, Results: results})
}
