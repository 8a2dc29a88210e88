package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tourism-microservice/internal/pkg/errors"
)

// uploadField - поле multipart с файлами изображений
const uploadField = "image_paths"

// UploadStore - сохранение загруженных изображений в локальный каталог
type UploadStore struct {
	dir      string
	maxFiles int
}

func NewUploadStore(dir string, maxFiles int) *UploadStore {
	if maxFiles <= 0 {
		maxFiles = 10
	}
	return &UploadStore{dir: dir, maxFiles: maxFiles}
}

// Save сохраняет файлы под уникальными именами и возвращает эти имена
func (s *UploadStore) Save(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.maxFiles {
		return nil, errors.ErrTooManyFiles.WithDetails(map[string]interface{}{"max": s.maxFiles})
	}
	if len(files) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, errors.ErrInternalServer.WithMessage("upload directory unavailable")
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		if err := c.SaveFile(fh, filepath.Join(s.dir, name)); err != nil {
			s.Remove(names)
			return nil, errors.ErrInternalServer.WithMessage("failed to save uploaded file")
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove удаляет файлы, сохраненные для неудавшейся записи
func (s *UploadStore) Remove(names []string) {
	for _, name := range names {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}
