package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"campus-portal/internal/domain"
	"campus-portal/internal/repository"
	"campus-portal/internal/storage"
)

// FileService coordina el repositorio de archivos: bytes en disco, metadata en Postgres.
type FileService struct {
	logger *zap.Logger
	files  repository.FileRepository
	disk   *storage.DiskStorage
}

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("file type not supported")
	ErrFileNotFound        = errors.New("file not found")
)

// allowedUploadTypes mapea extensiones aceptadas al MIME type declarado que se
// espera del navegador. Extensión y MIME deben coincidir ambos.
var allowedUploadTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".txt":  {"text/plain"},
	".ppt":  {"application/vnd.ms-powerpoint"},
	".pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation"},
}

func NewFileService(logger *zap.Logger, files repository.FileRepository, disk *storage.DiskStorage) *FileService {
	return &FileService{
		logger: logger,
		files:  files,
		disk:   disk,
	}
}

// Upload es el contenido entrante de un multipart form.
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// CheckUploadType valida extensión y Content-Type declarado contra la lista de
// tipos aceptados, antes de escribir nada.
func CheckUploadType(name, contentType string) error {
	ext := strings.ToLower(filepath.Ext(name))
	accepted, ok := allowedUploadTypes[ext]
	if !ok {
		return ErrUnsupportedFileType
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrUnsupportedFileType
	}
	for _, m := range accepted {
		if strings.EqualFold(mediaType, m) {
			return nil
		}
	}
	return ErrUnsupportedFileType
}

// ParseTags divide la lista separada por comas, recorta espacios por tag y
// descarta tokens vacíos, preservando el orden.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// StoredName genera el nombre en disco: timestamp en milisegundos más la
// extensión original. Suficiente contra colisiones al ritmo esperado del portal.
func StoredName(originalName string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), strings.ToLower(filepath.Ext(originalName)))
}

// UploadFile persiste los bytes y la metadata, y devuelve el registro creado.
func (s *FileService) UploadFile(ctx context.Context, uploaderID string, up *Upload, description, rawTags string) (domain.File, error) {
	if up == nil || up.Content == nil {
		return domain.File{}, ErrNoFile
	}
	if err := CheckUploadType(up.Name, up.ContentType); err != nil {
		return domain.File{}, err
	}

	path, err := s.disk.SaveFile(StoredName(up.Name), up.Content)
	if err != nil {
		return domain.File{}, err
	}

	file := domain.File{
		ID:          uuid.NewString(),
		Name:        up.Name,
		Path:        path,
		UploaderID:  uploaderID,
		Description: description,
		Tags:        ParseTags(rawTags),
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.files.Create(ctx, file); err != nil {
		return domain.File{}, err
	}

	s.logger.Info("file uploaded",
		zap.String("file_id", file.ID),
		zap.String("uploader_id", uploaderID),
		zap.String("path", path),
	)
	return file, nil
}

// StoreProfilePicture valida y guarda una foto de perfil; devuelve la ruta.
func (s *FileService) StoreProfilePicture(up *Upload) (string, error) {
	if up == nil || up.Content == nil {
		return "", ErrNoFile
	}
	if err := CheckUploadType(up.Name, up.ContentType); err != nil {
		return "", err
	}
	return s.disk.SavePicture(StoredName(up.Name), up.Content)
}

// List devuelve los archivos del usuario, en el orden natural del store.
func (s *FileService) List(ctx context.Context, uploaderID string) ([]domain.File, error) {
	return s.files.ListByUploader(ctx, uploaderID)
}

// Delete borra bytes y metadata de un archivo propio. El unlink fallido se
// loguea y no bloquea el borrado de la fila; los bytes huérfanos se recuperan
// barriendo el directorio de uploads contra files.file_path.
func (s *FileService) Delete(ctx context.Context, uploaderID, fileID string) error {
	file, err := s.files.GetByIDAndUploader(ctx, fileID, uploaderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrFileNotFound
	}
	if err != nil {
		return err
	}

	if err := s.disk.Remove(file.Path); err != nil {
		s.logger.Error("remove stored bytes failed",
			zap.String("file_id", fileID),
			zap.String("path", file.Path),
			zap.Error(err),
		)
	}

	if err := s.files.Delete(ctx, fileID, uploaderID); err != nil {
		return err
	}
	s.logger.Info("file deleted", zap.String("file_id", fileID))
	return nil
}

// Download resuelve un archivo por id para servirlo con su nombre original.
// No hay chequeo de propiedad: el repositorio es compartido entre todos los
// miembros autenticados del campus.
func (s *FileService) Download(ctx context.Context, fileID string) (domain.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.File{}, ErrFileNotFound
	}
	if err != nil {
		return domain.File{}, err
	}
	return file, nil
}
