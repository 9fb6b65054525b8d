package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/models"
)

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (h HandlerSet) ListTags(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	skip := intQuery(c, "skip", 0)

	tags, err := h.tagService.List(c.Request.Context(), limit, skip)
	if err != nil {
		httpx.WriteServiceError(c, err, "Listing failed")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h HandlerSet) GetTag(c *gin.Context) {
	tag, err := h.tagService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, tag)
}

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h HandlerSet) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "Tag creation failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"tag":    tag,
		"detail": "Tag successfully created",
	})
}

func (h HandlerSet) UpdateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tag":    tag,
		"detail": "Tag successfully updated",
	})
}

func (h HandlerSet) DeleteTag(c *gin.Context) {
	tag, err := h.tagService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tag":    tag,
		"detail": "Tag successfully deleted",
	})
}
