package main

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// savePostImage stores an optional uploaded post image under the media dir
// and returns the path it will be served at ("" when nothing was uploaded).
// The stored name is a fresh uuid so user-supplied filenames never touch
// the filesystem.
func savePostImage(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(cfg.MediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/media/" + name, nil
}
