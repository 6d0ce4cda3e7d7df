package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePostImage(t *testing.T) {
	newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("title", "With image"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	path, err := savePostImage(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/media/"), "got %q", path)
	assert.True(t, strings.HasSuffix(path, ".png"), "extension survives, got %q", path)
	assert.NotContains(t, path, "photo", "user-supplied name must not be reused")

	onDisk := filepath.Join(cfg.MediaDir, strings.TrimPrefix(path, "/media/"))
	b, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(b))
}

func TestSavePostImageWithoutFile(t *testing.T) {
	newTestApp(t)

	// Plain form post, no multipart body at all.
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	path, err := savePostImage(r)
	require.NoError(t, err)
	assert.Empty(t, path)
}
