package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const uploadDir = "posts"

// saveUpload stores an uploaded image under the media root and returns its
// path relative to that root. A nil header stores nothing.
func (s *Server) saveUpload(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", nil
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.mediaRoot, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return path.Join(uploadDir, name), nil
}

// mediaHandler serves uploaded files without directory listings.
func (s *Server) mediaHandler() http.Handler {
	files := http.StripPrefix("/media/", http.FileServer(http.Dir(s.mediaRoot)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			s.sendNotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
