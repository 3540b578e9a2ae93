package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/diyhub/backend/errs"
	"github.com/google/uuid"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize int64 = 5 << 20

var (
	allowedExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}
	allowedMIMETypes  = []string{"image/jpeg", "image/jpg", "image/png"}
	whitespace        = regexp.MustCompile(`\s+`)
)

// ImageStore persists validated images and returns the reference saved on the project.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// UniqueName builds "<unix-millis>-<uuid>-<original-with-dashes>".
func UniqueName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = whitespace.ReplaceAllString(strings.TrimSpace(base), "-")
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), uuid.NewString(), base)
}

// ValidateImage checks the file extension, the declared MIME type and the sniffed content
// against the jpeg/png allow-list.
func ValidateImage(filename, declaredType string, head []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return errs.NewUnsupportedMediaTypeError(ext, allowedMIMETypes)
	}
	if !allowedMIME(declaredType) {
		return errs.NewUnsupportedMediaTypeError(declaredType, allowedMIMETypes)
	}
	if sniffed := http.DetectContentType(head); !allowedMIME(sniffed) {
		return errs.NewUnsupportedMediaTypeError(sniffed, allowedMIMETypes)
	}
	return nil
}

func allowedMIME(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, allowed := range allowedMIMETypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// SaveMultipart validates an uploaded file and writes it to store under a unique name.
func SaveMultipart(ctx context.Context, store ImageStore, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", errs.NewMaxBodySizeExceededError(MaxImageSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", errs.NewMaxBodySizeExceededError(MaxImageSize)
	}

	contentType := fh.Header.Get("Content-Type")
	if err := ValidateImage(fh.Filename, contentType, data); err != nil {
		return "", err
	}

	return store.Save(ctx, UniqueName(fh.Filename, time.Now()), contentType, data)
}
