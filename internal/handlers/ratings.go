package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/middleware"
	"photoshare/api/internal/models"
)

// ratingRequest carries the five star flags; exactly one must be set.
type ratingRequest struct {
	OneStar    bool `json:"one_star"`
	TwoStars   bool `json:"two_stars"`
	ThreeStars bool `json:"three_stars"`
	FourStars  bool `json:"four_stars"`
	FiveStars  bool `json:"five_stars"`
}

func (r ratingRequest) stars() (int, bool) {
	flags := []bool{r.OneStar, r.TwoStars, r.ThreeStars, r.FourStars, r.FiveStars}
	stars := 0
	for i, set := range flags {
		if !set {
			continue
		}
		if stars != 0 {
			return 0, false
		}
		stars = i + models.OneStar
	}
	if stars == 0 {
		return 0, false
	}
	return stars, true
}

func (h HandlerSet) ImageRating(c *gin.Context) {
	avg, err := h.ratingService.AverageForImage(c.Request.Context(), c.Param("imageId"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratings": avg})
}

func (h HandlerSet) GetRating(c *gin.Context) {
	rating, err := h.ratingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Lookup failed")
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h HandlerSet) CreateRating(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	stars, ok := req.stars()
	if !ok {
		httpx.Detail(c, http.StatusUnprocessableEntity, "Exactly one star flag must be set")
		return
	}

	rating, err := h.ratingService.Create(c.Request.Context(), user, c.Param("imageId"), stars)
	if err != nil {
		httpx.WriteServiceError(c, err, "Rating failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"rating": rating,
		"detail": "Rating successfully added",
	})
}

func (h HandlerSet) UpdateRating(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	stars, ok := req.stars()
	if !ok {
		httpx.Detail(c, http.StatusUnprocessableEntity, "Exactly one star flag must be set")
		return
	}

	rating, err := h.ratingService.Update(c.Request.Context(), user, c.Param("id"), stars)
	if err != nil {
		httpx.WriteServiceError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rating": rating,
		"detail": "Rating successfully updated",
	})
}

func (h HandlerSet) DeleteRating(c *gin.Context) {
	rating, err := h.ratingService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rating": rating,
		"detail": "Rating successfully deleted",
	})
}
