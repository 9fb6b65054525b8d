package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/service"
)

type searchResultResponse struct {
	imageResponse
	Ratings float64 `json:"ratings"`
}

func toSearchResponses(results []service.SearchResult) []searchResultResponse {
	out := make([]searchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultResponse{
			imageResponse: toImageResponse(r.Image),
			Ratings:       r.Ratings,
		})
	}
	return out
}

func (h HandlerSet) SearchByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		httpx.Detail(c, http.StatusBadRequest, "tag query parameter required")
		return
	}
	order := c.DefaultQuery("order", service.OrderNewestFirst)

	results, err := h.searchService.ByTag(c.Request.Context(), tag, order,
		intQuery(c, "limit", 10), intQuery(c, "skip", 0))
	if err != nil {
		httpx.WriteServiceError(c, err, "Search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": toSearchResponses(results)})
}

func (h HandlerSet) SearchByUser(c *gin.Context) {
	order := c.DefaultQuery("order", service.OrderNewestFirst)

	results, err := h.searchService.ByUser(c.Request.Context(), c.Param("userId"), order,
		intQuery(c, "limit", 10), intQuery(c, "skip", 0))
	if err != nil {
		httpx.WriteServiceError(c, err, "Search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": toSearchResponses(results)})
}
