package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt(".PDF"))
	assert.Equal(t, "jpeg", NormalizeExt("jpeg"))
	assert.Equal(t, "", NormalizeExt("."))
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"form.pdf", "application/pdf"},
		{"SCAN.PDF", "application/pdf"},
		{"page.png", "image/png"},
		{"page.jpg", "image/jpeg"},
		{"page.jpeg", "image/jpeg"},
		{"notes.docx", ""},
		{"archive.tar.gz", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectMIMEType(tt.filename), tt.filename)
	}
}
