package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAllowedImageFile(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"bukti.jpg", true},
		{"bukti.JPG", true},
		{"bukti.jpeg", true},
		{"bukti.png", true},
		{"bukti.gif", true},
		{"bukti.pdf", false},
		{"bukti.exe", false},
		{"bukti", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedImageFile(tt.filename); got != tt.allowed {
			t.Errorf("AllowedImageFile(%q) = %v, expected %v", tt.filename, got, tt.allowed)
		}
	}
}

func TestRemoveStoredFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foto.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveStoredFile(dir, "foto.jpg"); err != nil {
		t.Errorf("RemoveStoredFile() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}
}

func TestRemoveStoredFile_Missing(t *testing.T) {
	if err := RemoveStoredFile(t.TempDir(), "absent.jpg"); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}

func TestRemoveStoredFile_EmptyName(t *testing.T) {
	if err := RemoveStoredFile(t.TempDir(), ""); err != nil {
		t.Errorf("empty filename should be a no-op, got %v", err)
	}
}
