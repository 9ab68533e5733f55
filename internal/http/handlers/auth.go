package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
	"github.com/artcove/artcove-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	bucket      gcp.BucketService
}

func NewAuthHandler(authService services.AuthService, bucket gcp.BucketService) *AuthHandler {
	return &AuthHandler{authService: authService, bucket: bucket}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	in, err := schema.DecodeInsertUser(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := ah.authService.Register(c.Request.Context(), in)
	if err != nil {
		ae := apierr.From(err, "registration_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeUserAvatarURL(ah.bucket, u)
	response.RespondOK(c, gin.H{"user": u})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ae := apierr.From(err, "login_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    expiresIn,
	})
}

// POST /api/refresh
// The route is public; an expired access token must not lock the caller
// out of rotating the pair.
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
		RefreshToken: req.RefreshToken,
	})
	accessToken, refreshToken, err := ah.authService.Refresh(ctx)
	if err != nil {
		ae := apierr.From(err, "refresh_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    expiresIn,
	})
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		ae := apierr.From(err, "logout_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
