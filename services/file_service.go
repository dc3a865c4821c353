package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileService stores uploaded files under the uploads directory that the
// router also serves statically.
type FileService struct {
	Dir string
}

func NewFileService(dir string) *FileService {
	return &FileService{Dir: dir}
}

func (f *FileService) SaveLogo(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "png"
	}
	name := fmt.Sprintf("logo-%d.%s", time.Now().UnixMilli(), ext)

	if err := os.WriteFile(filepath.Join(f.Dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write logo: %w", err)
	}
	return "/uploads/" + name, nil
}

// DeleteLogo removes the file behind a stored logo URL. URLs outside the
// uploads namespace and already-missing files are ignored.
func (f *FileService) DeleteLogo(logoURL string) error {
	if !strings.HasPrefix(logoURL, "/uploads/") {
		return nil
	}
	err := os.Remove(filepath.Join(f.Dir, filepath.Base(logoURL)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
