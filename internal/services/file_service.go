package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Accepted upload extensions
var (
	RecipientExtensions = []string{".csv", ".xlsx"}
	LogoExtensions      = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
)

// FileService stores uploaded files under a uuid name
type FileService struct {
	storageDir string
}

func NewFileService(storageDir string) *FileService {
	// Create storage directory if it doesn't exist
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		logrus.Warnf("Failed to create storage directory %s: %v", storageDir, err)
	}
	return &FileService{storageDir: storageDir}
}

// SaveUpload copies an uploaded file into storage and returns its path.
// The extension of the original name must be one of allowed.
func (s *FileService) SaveUpload(fileHeader *multipart.FileHeader, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !hasExtension(allowed, ext) {
		return "", fmt.Errorf("%w: %q, expected one of %s", ErrUnsupportedFile, fileHeader.Filename, strings.Join(allowed, ", "))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	path := filepath.Join(s.storageDir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}

// ReadUpload returns the content of an uploaded file without storing it
func (s *FileService) ReadUpload(fileHeader *multipart.FileHeader, allowed []string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !hasExtension(allowed, ext) {
		return nil, fmt.Errorf("%w: %q, expected one of %s", ErrUnsupportedFile, fileHeader.Filename, strings.Join(allowed, ", "))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func hasExtension(allowed []string, ext string) bool {
	for _, a := range allowed {
		if a == ext {
			return true
		}
	}
	return false
}
