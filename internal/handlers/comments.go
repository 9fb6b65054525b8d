package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/middleware"
	"photoshare/api/internal/models"
)

func (h HandlerSet) ListComments(c *gin.Context) {
	imageID := c.Query("image_id")
	if imageID == "" {
		httpx.Detail(c, http.StatusBadRequest, "image_id query parameter required")
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), imageID)
	if err != nil {
		httpx.WriteServiceError(c, err, "Listing failed")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h HandlerSet) GetComment(c *gin.Context) {
	comment, err := h.commentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, comment)
}

type createCommentRequest struct {
	ImageID string `json:"image_id" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

func (h HandlerSet) CreateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), user, req.ImageID, req.Comment)
	if err != nil {
		httpx.WriteServiceError(c, err, "Comment failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"detail":  "Comment successfully added",
	})
}

type updateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (h HandlerSet) UpdateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), user, c.Param("id"), req.Comment)
	if err != nil {
		httpx.WriteServiceError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment": comment,
		"detail":  "Comment successfully updated",
	})
}

func (h HandlerSet) DeleteComment(c *gin.Context) {
	comment, err := h.commentService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comment": comment,
		"detail":  "Comment successfully deleted",
	})
}
