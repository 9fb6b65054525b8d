package media

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
)

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWEBP Format = "webp"
)

var ErrUnknownFormat = errors.New("unsupported image format")

type SniffResult struct {
	Format Format
	MIME   string
}

// Sniff identifies an uploaded photo from its magic bytes. Declared content
// types are not trusted; DeclaredMIME is only used to reject mismatches.
func Sniff(head []byte) (SniffResult, error) {
	if len(head) == 0 {
		return SniffResult{}, ErrUnknownFormat
	}

	switch {
	case isJPEG(head):
		return SniffResult{Format: FormatJPEG, MIME: "image/jpeg"}, nil
	case isPNG(head):
		return SniffResult{Format: FormatPNG, MIME: "image/png"}, nil
	case isGIF(head):
		return SniffResult{Format: FormatGIF, MIME: "image/gif"}, nil
	case isWEBP(head):
		return SniffResult{Format: FormatWEBP, MIME: "image/webp"}, nil
	}
	return SniffResult{}, ErrUnknownFormat
}

func isJPEG(head []byte) bool {
	return len(head) > 3 && head[0] == 0xff && head[1] == 0xd8 && head[2] == 0xff
}

func isPNG(head []byte) bool {
	magic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(magic) && bytes.Equal(head[:len(magic)], magic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

// DeclaredMIME extracts the bare media type from a multipart part header.
func DeclaredMIME(header http.Header) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return ""
	}
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		return strings.TrimSpace(contentType[:idx])
	}
	return strings.TrimSpace(contentType)
}
