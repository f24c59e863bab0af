package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/internal/service"
)

// ProfileHandler mantiene dependencias para las páginas de perfil.
type ProfileHandler struct {
	logger *zap.Logger
	users  *service.UserService
	files  *service.FileService
}

func NewProfileHandler(logger *zap.Logger, users *service.UserService, files *service.FileService) *ProfileHandler {
	return &ProfileHandler{
		logger: logger,
		users:  users,
		files:  files,
	}
}

// Show maneja GET /profile.
func (h *ProfileHandler) Show(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{"user": user})
}

// EditForm maneja GET /profile/edit.
func (h *ProfileHandler) EditForm(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.HTML(http.StatusOK, "edit.tmpl", gin.H{"user": user})
}

// Update maneja POST /profile/edit: sobreescritura completa de nombre,
// apellido y bio. Las fallas del store se loguean y vuelven al perfil.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, _ := CurrentUser(c)

	err := h.users.UpdateProfile(c.Request.Context(),
		user.ID,
		c.PostForm("name"),
		c.PostForm("surname"),
		c.PostForm("bio"),
	)
	if err != nil {
		h.logger.Error("update profile failed", zap.String("user_id", user.ID), zap.Error(err))
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	h.logger.Info("profile updated", zap.String("email", user.Email))
	c.Redirect(http.StatusFound, "/profile")
}

// UploadPicture maneja POST /profile/edit/upload, campo profilePicture.
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	user, _ := CurrentUser(c)

	fh, err := c.FormFile("profilePicture")
	if err != nil {
		h.logger.Warn("no profile picture uploaded", zap.String("user_id", user.ID))
		c.Redirect(http.StatusFound, "/profile/edit")
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("open profile picture failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/profile/edit")
		return
	}
	defer src.Close()

	path, err := h.files.StoreProfilePicture(&service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     src,
	})
	if err != nil {
		h.logger.Warn("store profile picture failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/profile/edit")
		return
	}

	if err := h.users.UpdateProfilePicture(c.Request.Context(), user.ID, path); err != nil {
		h.logger.Error("update profile picture failed", zap.String("user_id", user.ID), zap.Error(err))
		c.Redirect(http.StatusFound, "/profile/edit")
		return
	}

	h.logger.Info("profile picture updated", zap.String("email", user.Email))
	c.Redirect(http.StatusFound, "/profile")
}
