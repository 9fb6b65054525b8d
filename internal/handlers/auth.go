package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoshare/api/internal/httpx"
	"photoshare/api/internal/models"
	"photoshare/api/internal/service"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Confirmed bool    `json:"confirmed"`
	AvatarURL *string `json:"avatarUrl"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Confirmed: user.Confirmed,
		AvatarURL: user.AvatarURL,
	}
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "Signup failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   toUserResponse(user),
		"detail": "User successfully created. Check your email for confirmation.",
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

// RefreshToken rotates the token pair. The refresh token travels in the
// Authorization header the same way access tokens do.
func (h HandlerSet) RefreshToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		httpx.Detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		httpx.WriteServiceError(c, err, "Refresh failed")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h HandlerSet) ConfirmEmail(c *gin.Context) {
	message, err := h.authService.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Verification error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": message})
}

type banRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

func (h HandlerSet) BanUser(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	email := c.Param("email")
	if err := h.authService.SetBanned(c.Request.Context(), email, *req.Banned); err != nil {
		httpx.WriteServiceError(c, err, "Ban failed")
		return
	}

	detail := "User banned"
	if !*req.Banned {
		detail = "User unbanned"
	}
	c.JSON(http.StatusOK, gin.H{"detail": detail})
}
