package services

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestStorage_SavesImagesLocally(t *testing.T) {
	f := newFixture(t)
	data := pngBytes(t)

	res, err := f.svc.Storage.SaveImage(f.ctx, "Photo.PNG", int64(len(data)), bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Image, LocalURLPrefix+"/image-"), res.Image)
	assert.True(t, strings.HasSuffix(res.Image, ".png"), res.Image)

	stored, err := os.ReadFile(filepath.Join(f.svc.Storage.upload.Dir, strings.TrimPrefix(res.Image, LocalURLPrefix+"/")))
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestStorage_RejectsBadUploads(t *testing.T) {
	f := newFixture(t)
	data := pngBytes(t)

	tests := []struct {
		name     string
		filename string
		size     int64
		body     []byte
		key      string
	}{
		{"extension not allowed", "notes.txt", 5, []byte("hello"), i18n.KeyUploadInvalidType},
		{"content does not match extension", "photo.jpg", int64(len(data)), data, i18n.KeyUploadInvalidType},
		{"text named as image", "photo.png", 5, []byte("hello"), i18n.KeyUploadInvalidType},
		{"declared size too large", "photo.png", 2 << 20, data, i18n.KeyUploadTooLarge},
		{"body larger than declared", "photo.png", 10, append(data, make([]byte, 1<<20)...), i18n.KeyUploadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Storage.SaveImage(f.ctx, tt.filename, tt.size, bytes.NewReader(tt.body))
			assertKind(t, err, apperror.ErrValidation, tt.key)
		})
	}
}
