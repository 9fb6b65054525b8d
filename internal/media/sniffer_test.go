package media

import (
	"errors"
	"net/http"
	"testing"
)

func TestSniffKnownFormats(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want Format
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, FormatJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, FormatPNG},
		{"gif87a", []byte("GIF87a...."), FormatGIF},
		{"gif89a", []byte("GIF89a...."), FormatGIF},
		{"webp", []byte("RIFF1234WEBPVP8 "), FormatWEBP},
	}

	for _, tc := range cases {
		res, err := Sniff(tc.head)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if res.Format != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, res.Format)
		}
	}
}

func TestSniffRejectsUnknown(t *testing.T) {
	for _, head := range [][]byte{nil, {}, []byte("plain text"), {0x00, 0x01, 0x02, 0x03}} {
		if _, err := Sniff(head); !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("expected ErrUnknownFormat for %v, got %v", head, err)
		}
	}
}

func TestDeclaredMIMEStripsParameters(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		want        string
	}{
		{"bare", "image/jpeg", "image/jpeg"},
		{"with parameter", "image/jpeg; name=photo.jpg", "image/jpeg"},
		{"padded", "  image/png ; charset=binary", "image/png"},
		{"missing", "", ""},
	}

	for _, tc := range cases {
		header := http.Header{}
		if tc.contentType != "" {
			header.Set("Content-Type", tc.contentType)
		}
		if got := DeclaredMIME(header); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
