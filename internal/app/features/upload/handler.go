// internal/app/features/upload/handler.go
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	levelstore "github.com/arenaops/venuehub/internal/app/store/levels"
	"github.com/arenaops/venuehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler accepts floor-plan image uploads and binds them to a level.
type Handler struct {
	Levels  *levelstore.Store
	Files   storage.Store
	BaseURL string // public URL prefix for stored files
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(levels *levelstore.Store, files storage.Store, baseURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Levels:  levels,
		Files:   files,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		ErrLog:  errLog,
		Log:     logger,
	}
}

type uploadResponse struct {
	Level string `json:"level"`
	URL   string `json:"url"`
}

// HandleUpload handles POST /api/upload: a multipart form with a
// "level" field and a "file" image. The stored file replaces the
// level's floor-plan image.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// 16MB max: floor plans are large PNGs.
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		h.ErrLog.LogBadRequest(w, r, "upload: parse form failed", err, "Invalid form data.")
		return
	}

	level := strings.TrimSpace(r.FormValue("level"))
	if level == "" {
		uierrors.WriteError(w, http.StatusBadRequest, "Level is required.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header == nil || header.Size == 0 {
		uierrors.WriteError(w, http.StatusBadRequest, "An image file is required.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		uierrors.WriteError(w, http.StatusBadRequest, "Only image files can be used as floor plans.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	path, err := h.storeFile(ctx, header.Filename, file, contentType)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "upload: store file", err, "Unable to store the uploaded file.")
		return
	}

	url := h.BaseURL + "/" + path
	if _, err := h.Levels.UpsertImage(ctx, level, url); err != nil {
		h.ErrLog.LogServerError(w, r, "upload: bind image to level", err, "Unable to update the floor level.")
		return
	}

	h.Log.Info("floor plan uploaded",
		zap.String("level", level),
		zap.String("path", path),
		zap.Int64("size", header.Size))
	uierrors.JSON(w, http.StatusOK, uploadResponse{Level: level, URL: url})
}

// storeFile writes the upload under a unique path:
// levels/YYYY/MM/uuid-filename.
func (h *Handler) storeFile(ctx context.Context, filename string, file io.Reader, contentType string) (string, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("levels/%04d/%02d", now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Files.Put(ctx, path, file, opts); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return path, nil
}

// sanitizeFilename strips path components and replaces characters that
// could be problematic in stored filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve the extension if present.
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
