package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/media"
	"photoshare/api/internal/middleware"
	"photoshare/api/internal/models"
	"photoshare/api/internal/service"
)

// maxUploadBytes caps a single original at 20 MiB.
const maxUploadBytes = 20 << 20

type imageResponse struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	URL         string       `json:"url"`
	PublicName  string       `json:"publicName"`
	Description string       `json:"description"`
	Tags        []models.Tag `json:"tags"`
}

func toImageResponse(img models.Image) imageResponse {
	tags := img.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return imageResponse{
		ID:          img.ID,
		UserID:      img.UserID,
		URL:         img.URL,
		PublicName:  img.PublicName,
		Description: img.Description,
		Tags:        tags,
	}
}

type imageViewResponse struct {
	imageResponse
	Ratings  float64          `json:"ratings"`
	Comments []models.Comment `json:"comments"`
}

func toImageViewResponse(view service.ImageView) imageViewResponse {
	comments := view.Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	return imageViewResponse{
		imageResponse: toImageResponse(view.Image),
		Ratings:       view.Ratings,
		Comments:      comments,
	}
}

func (h HandlerSet) UploadImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpx.Detail(c, http.StatusBadRequest, "File is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httpx.Detail(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpx.Detail(c, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httpx.Detail(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	if len(data) > maxUploadBytes {
		httpx.Detail(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	result, err := h.imageService.Upload(c.Request.Context(), user, service.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: media.DeclaredMIME(http.Header(fileHeader.Header)),
		Data:        data,
		Description: c.PostForm("description"),
		Tags:        c.PostFormArray("tags"),
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "Upload failed")
		return
	}

	detail := "Image was successfully added"
	if result.Warning != "" {
		detail += ". " + result.Warning
	}
	c.JSON(http.StatusCreated, gin.H{
		"image":  toImageResponse(result.Image),
		"detail": detail,
	})
}

func (h HandlerSet) ListImages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	views, err := h.imageService.List(c.Request.Context(), user)
	if err != nil {
		httpx.WriteServiceError(c, err, "Listing failed")
		return
	}

	out := make([]imageViewResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toImageViewResponse(view))
	}
	c.JSON(http.StatusOK, gin.H{"images": out})
}

func (h HandlerSet) GetImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	view, err := h.imageService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, toImageViewResponse(view))
}

type updateImageRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h HandlerSet) UpdateImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	img, err := h.imageService.UpdateDescription(c.Request.Context(), user, c.Param("id"), req.Description)
	if err != nil {
		httpx.WriteServiceError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image":  toImageResponse(img),
		"detail": "Image was successfully updated",
	})
}

type replaceTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

func (h HandlerSet) ReplaceImageTags(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req replaceTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.imageService.ReplaceTags(c.Request.Context(), user, c.Param("id"), req.Tags)
	if err != nil {
		httpx.WriteServiceError(c, err, "Update failed")
		return
	}

	detail := "Image was successfully updated"
	if result.Warning != "" {
		detail += ". " + result.Warning
	}
	c.JSON(http.StatusOK, gin.H{
		"image":  toImageResponse(result.Image),
		"detail": detail,
	})
}

func (h HandlerSet) DeleteImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	img, err := h.imageService.Delete(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image":  toImageResponse(img),
		"detail": "Image was successfully deleted",
	})
}

func (h HandlerSet) ListImagesByUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	views, err := h.imageService.ListByUser(c.Request.Context(), user, c.Param("userId"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Listing failed")
		return
	}

	out := make([]imageViewResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toImageViewResponse(view))
	}
	c.JSON(http.StatusOK, gin.H{"images": out})
}
