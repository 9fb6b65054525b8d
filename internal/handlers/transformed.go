package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/media"
	"photoshare/api/internal/middleware"
	"photoshare/api/internal/models"
)

type transformRequest struct {
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
	Crop   string `json:"crop" binding:"required"`
	Angle  int    `json:"angle"`
}

func (h HandlerSet) CreateTransformedImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req transformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ti, err := h.transformService.Create(c.Request.Context(), user, c.Param("id"), media.Transform{
		Width:  req.Width,
		Height: req.Height,
		Crop:   req.Crop,
		Angle:  req.Angle,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "Transformation failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transformed_image": ti,
		"detail":            "Transformation successfully created",
	})
}

func (h HandlerSet) ListTransformedImages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	list, err := h.transformService.ListByImage(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Listing failed")
		return
	}
	if list == nil {
		list = []models.TransformedImage{}
	}
	c.JSON(http.StatusOK, gin.H{"transformed_images": list})
}

func (h HandlerSet) TransformedImageQRCode(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	qrURL, err := h.transformService.QRCode(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qr_code_url": qrURL})
}

func (h HandlerSet) DeleteTransformedImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	ti, err := h.transformService.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transformed_image": ti,
		"detail":            "Transformation successfully deleted",
	})
}
