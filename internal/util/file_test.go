package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal 1x1 PNG header bytes; enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestValidateMimeType(t *testing.T) {
	t.Run("accepts an image by prefix", func(t *testing.T) {
		mimeType, err := ValidateMimeType(bytes.NewReader(pngBytes), []string{MimeImage})
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
	})

	t.Run("rejects plain text", func(t *testing.T) {
		_, err := ValidateMimeType(bytes.NewReader([]byte("question,answer\n1,2\n")), []string{MimeImage})
		assert.Error(t, err)
	})
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.False(t, IsImage("text/plain"))
}

func TestIsAllowedImageExtension(t *testing.T) {
	assert.True(t, IsAllowedImageExtension("diagram.png"))
	assert.True(t, IsAllowedImageExtension("PHOTO.JPG"))
	assert.True(t, IsAllowedImageExtension("anim.webp"))
	assert.False(t, IsAllowedImageExtension("scan.tiff"))
	assert.False(t, IsAllowedImageExtension("noextension"))
}
