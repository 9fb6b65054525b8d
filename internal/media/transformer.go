package media

import (
	"fmt"
	"net/url"
	"strings"

	"photoshare/api/internal/config"
	"photoshare/api/internal/security"
)

// Crop modes accepted by the media host.
const (
	CropFill  = "fill"
	CropFit   = "fit"
	CropCrop  = "crop"
	CropScale = "scale"
)

var validCrops = map[string]struct{}{
	CropFill:  {},
	CropFit:   {},
	CropCrop:  {},
	CropScale: {},
}

func IsValidCrop(crop string) bool {
	_, ok := validCrops[crop]
	return ok
}

type Transform struct {
	Width  int
	Height int
	Crop   string
	Angle  int
}

// Transformer builds URLs against the hosted media transformation service.
// The service performs the actual pixel work (crop/resize/rotate) and QR
// rendering; this backend only constructs signed URLs and stores them.
type Transformer struct {
	baseURL string
	secret  string
}

func NewTransformer(cfg config.MediaHostConfig, secret string) *Transformer {
	return &Transformer{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		secret:  secret,
	}
}

// TransformURL returns the hosted URL serving the source image with the
// given transformation applied. The path segment is HMAC-signed so the host
// rejects URLs this backend did not issue.
func (t *Transformer) TransformURL(sourceURL string, tr Transform) string {
	spec := fmt.Sprintf("w_%d,h_%d,c_%s,a_%d", tr.Width, tr.Height, tr.Crop, tr.Angle)
	sig := security.SignResource(t.secret, spec, sourceURL)
	return fmt.Sprintf("%s/transform/%s/%s?src=%s", t.baseURL, sig, spec, url.QueryEscape(sourceURL))
}

// QRCodeURL returns the hosted URL rendering a QR code for target.
func (t *Transformer) QRCodeURL(target string) string {
	sig := security.SignResource(t.secret, "qr", target)
	return fmt.Sprintf("%s/qr/%s?data=%s", t.baseURL, sig, url.QueryEscape(target))
}
