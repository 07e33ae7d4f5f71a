package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageExts are the accepted evidence photo and logo formats.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var ErrUnsupportedFileType = errors.New("unsupported file type, use PNG, JPG or GIF")

// AllowedImageFile reports whether the filename carries an accepted image
// extension.
func AllowedImageFile(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// SaveImage stores an uploaded image under dir with a generated name and
// returns the stored filename. The original name is discarded; only the
// extension is kept.
func SaveImage(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if !AllowedImageFile(file.Filename) {
		return "", ErrUnsupportedFileType
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveStoredFile deletes a previously stored upload. A missing file is not
// an error.
func RemoveStoredFile(dir, filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filename))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
