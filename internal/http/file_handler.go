package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-portal/internal/service"
)

// FileHandler mantiene dependencias para los endpoints del repositorio de archivos.
type FileHandler struct {
	logger *zap.Logger
	files  *service.FileService
}

func NewFileHandler(logger *zap.Logger, files *service.FileService) *FileHandler {
	return &FileHandler{
		logger: logger,
		files:  files,
	}
}

// List maneja GET /files: los archivos del usuario autenticado.
func (h *FileHandler) List(c *gin.Context) {
	user, _ := CurrentUser(c)

	files, err := h.files.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list files failed", zap.String("user_id", user.ID), zap.Error(err))
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	c.HTML(http.StatusOK, "files-list.tmpl", gin.H{"user": user, "files": files})
}

// UploadForm maneja GET /files/upload.
func (h *FileHandler) UploadForm(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.HTML(http.StatusOK, "upload-file.tmpl", gin.H{"user": user})
}

// Upload maneja POST /files/upload: campos file, file_description y file_tags.
func (h *FileHandler) Upload(c *gin.Context) {
	user, _ := CurrentUser(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "No file uploaded.")
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("open upload failed", zap.Error(err))
		c.Redirect(http.StatusFound, "/files/upload")
		return
	}
	defer src.Close()

	_, err = h.files.UploadFile(c.Request.Context(),
		user.ID,
		&service.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     src,
		},
		c.PostForm("file_description"),
		c.PostForm("file_tags"),
	)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			h.logger.Warn("upload rejected", zap.String("file_name", fh.Filename), zap.Error(err))
		} else {
			h.logger.Error("upload failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		c.Redirect(http.StatusFound, "/files/upload")
		return
	}

	c.Redirect(http.StatusFound, "/files")
}

// Delete maneja POST /files/delete/:fileId, solo sobre archivos propios.
func (h *FileHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)
	fileID := c.Param("fileId")

	err := h.files.Delete(c.Request.Context(), user.ID, fileID)
	if errors.Is(err, service.ErrFileNotFound) {
		c.String(http.StatusNotFound, "File not found.")
		return
	}
	if err != nil {
		h.logger.Error("delete file failed", zap.String("file_id", fileID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Error deleting file.")
		return
	}

	c.Redirect(http.StatusFound, "/files")
}

// Download maneja GET /files/download/:fileId. Cualquier usuario autenticado
// puede descargar cualquier archivo por id: el repositorio es compartido.
func (h *FileHandler) Download(c *gin.Context) {
	fileID := c.Param("fileId")

	file, err := h.files.Download(c.Request.Context(), fileID)
	if errors.Is(err, service.ErrFileNotFound) {
		c.String(http.StatusNotFound, "File not found.")
		return
	}
	if err != nil {
		h.logger.Error("download file failed", zap.String("file_id", fileID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Error downloading file.")
		return
	}

	c.FileAttachment(file.Path, file.Name)
}
