package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uploadDir() string {
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		return v
	}
	return "./uploads"
}

// saveProductImage stores an optional multipart image and returns its served
// URL. No file in the request is not an error, it just yields an empty URL.
func saveProductImage(c *fiber.Ctx, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return "/uploads/" + name, nil
}
