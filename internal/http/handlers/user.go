package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
	bucket      gcp.BucketService
}

func NewUserHandler(userService services.UserService, bucket gcp.BucketService) *UserHandler {
	return &UserHandler{userService: userService, bucket: bucket}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		ae := apierr.From(err, "get_me_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeUserAvatarURL(uh.bucket, me)
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /api/me
// body: { "display_name": "...", "bio": "..." }, both optional
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := uh.userService.UpdateProfile(c.Request.Context(), req.DisplayName, req.Bio)
	if err != nil {
		ae := apierr.From(err, "update_profile_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeUserAvatarURL(uh.bucket, u)
	response.RespondOK(c, gin.H{"me": u})
}

// POST /api/me/avatar (multipart/form-data)
// field: "file"
func (uh *UserHandler) UploadAvatar(c *gin.Context) {
	const maxBytes = 10 << 20

	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}
	if len(raw) > maxBytes {
		response.RespondError(c, http.StatusBadRequest, "file_too_large", nil)
		return
	}

	u, err := uh.userService.UploadAvatarImage(c.Request.Context(), raw)
	if err != nil {
		ae := apierr.From(err, "upload_avatar_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeUserAvatarURL(uh.bucket, u)
	response.RespondOK(c, gin.H{"me": u})
}
