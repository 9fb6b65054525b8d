package media

import (
	"strings"
	"testing"

	"photoshare/api/internal/config"
)

func testTransformer() *Transformer {
	return NewTransformer(config.MediaHostConfig{BaseURL: "https://media.test/"}, "secret")
}

func TestTransformURLFormat(t *testing.T) {
	tr := testTransformer()

	url := tr.TransformURL("https://cdn.test/a.png", Transform{Width: 300, Height: 200, Crop: CropFill, Angle: 45})
	if !strings.HasPrefix(url, "https://media.test/transform/") {
		t.Fatalf("unexpected prefix in %q", url)
	}
	if !strings.Contains(url, "/w_300,h_200,c_fill,a_45?") {
		t.Fatalf("spec segment missing in %q", url)
	}
	if !strings.Contains(url, "src=https%3A%2F%2Fcdn.test%2Fa.png") {
		t.Fatalf("source not escaped in %q", url)
	}
}

func TestTransformURLDeterministic(t *testing.T) {
	tr := testTransformer()
	in := Transform{Width: 100, Height: 100, Crop: CropFit, Angle: 0}

	a := tr.TransformURL("https://cdn.test/a.png", in)
	b := tr.TransformURL("https://cdn.test/a.png", in)
	if a != b {
		t.Fatalf("same input must give same URL: %q vs %q", a, b)
	}

	c := tr.TransformURL("https://cdn.test/other.png", in)
	if a == c {
		t.Fatalf("different source must give different signature")
	}
}

func TestTransformURLSignatureDependsOnSecret(t *testing.T) {
	a := NewTransformer(config.MediaHostConfig{BaseURL: "https://media.test"}, "one")
	b := NewTransformer(config.MediaHostConfig{BaseURL: "https://media.test"}, "two")
	in := Transform{Width: 10, Height: 10, Crop: CropCrop, Angle: 0}

	if a.TransformURL("https://cdn.test/a.png", in) == b.TransformURL("https://cdn.test/a.png", in) {
		t.Fatalf("different secrets must give different signatures")
	}
}

func TestQRCodeURL(t *testing.T) {
	tr := testTransformer()

	url := tr.QRCodeURL("https://media.test/transform/abc")
	if !strings.HasPrefix(url, "https://media.test/qr/") {
		t.Fatalf("unexpected prefix in %q", url)
	}
	if !strings.Contains(url, "data=https%3A%2F%2Fmedia.test%2Ftransform%2Fabc") {
		t.Fatalf("target not escaped in %q", url)
	}
}

func TestIsValidCrop(t *testing.T) {
	for _, crop := range []string{CropFill, CropFit, CropCrop, CropScale} {
		if !IsValidCrop(crop) {
			t.Fatalf("%q must be valid", crop)
		}
	}
	if IsValidCrop("zoom") {
		t.Fatalf("unknown crop accepted")
	}
}
