// Package storage uploads images to the hosted image service and builds
// delivery URLs for them.
package storage

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"hugox-backend/apperror"
)

// RootFolder prefixes every preset folder.
const RootFolder = "hugox-ecommerce"

// Preset is the upload profile of one kind of image.
type Preset struct {
	Name           string
	Folder         string
	Field          string
	MaxFiles       int
	MaxBytes       int64
	Transformation string
}

// Presets by route segment. MaxBytes zero means the configured default.
var (
	ProductImages = Preset{Name: "products", Folder: RootFolder + "/products", Field: "image", MaxFiles: 10,
		Transformation: "q_auto,f_auto/w_800,h_800,c_limit"}
	NewsImages = Preset{Name: "news", Folder: RootFolder + "/news", Field: "image", MaxFiles: 5,
		Transformation: "q_auto,f_auto/w_1200,h_630,c_limit"}
	Avatars = Preset{Name: "avatars", Folder: RootFolder + "/avatars", Field: "avatar", MaxFiles: 1, MaxBytes: 2 << 20,
		Transformation: "q_auto,f_auto/w_300,h_300,c_fill,g_face"}
	CategoryImages = Preset{Name: "categories", Folder: RootFolder + "/categories", Field: "image", MaxFiles: 1, MaxBytes: 2 << 20,
		Transformation: "q_auto,f_auto/w_400,h_400,c_limit"}
	Logo = Preset{Name: "logo", Folder: RootFolder + "/products", Field: "logo", MaxFiles: 1,
		Transformation: ProductImages.Transformation}
	Favicon = Preset{Name: "favicon", Folder: RootFolder + "/products", Field: "favicon", MaxFiles: 1,
		Transformation: ProductImages.Transformation}
)

// Image is the stored asset as returned to clients.
type Image struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// Info is the metadata of a stored asset.
type Info struct {
	Image
	AssetID      string    `json:"asset_id"`
	ResourceType string    `json:"resource_type"`
	Type         string    `json:"type"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
}

// Transform describes a derived delivery URL. Zero fields are omitted.
type Transform struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

// String renders t in the provider's URL transformation syntax.
func (t Transform) String() string {
	var parts []string
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Quality != "" {
		parts = append(parts, "q_"+t.Quality)
	}
	if t.Format != "" {
		parts = append(parts, "f_"+t.Format)
	}
	return strings.Join(parts, ",")
}

var crops = map[string]bool{
	"scale": true, "fit": true, "limit": true, "mfit": true, "fill": true,
	"lfill": true, "pad": true, "lpad": true, "mpad": true, "crop": true, "thumb": true,
}

// ParseTransform validates the query of the transform endpoint.
func ParseTransform(width, height, crop, quality, format string) (Transform, error) {
	var t Transform
	var err error
	if t.Width, err = dimension("width", width); err != nil {
		return t, err
	}
	if t.Height, err = dimension("height", height); err != nil {
		return t, err
	}
	if crop != "" && !crops[crop] {
		return t, apperror.Validation("crop", "Invalid crop mode")
	}
	t.Crop = crop
	if quality != "" && quality != "auto" && !strings.HasPrefix(quality, "auto:") {
		if q, err := strconv.Atoi(quality); err != nil || q < 1 || q > 100 {
			return t, apperror.Validation("quality", "quality must be auto or 1-100")
		}
	}
	t.Quality = quality
	for _, r := range format {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return t, apperror.Validation("format", "Invalid format")
		}
	}
	t.Format = format
	return t, nil
}

func dimension(field, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 5000 {
		return 0, apperror.Validation(field, field+" must be between 1 and 5000")
	}
	return n, nil
}

// ImageStore is the image service used by the upload endpoints.
type ImageStore interface {
	Upload(ctx context.Context, p Preset, filename string, r io.Reader) (*Image, error)
	Destroy(ctx context.Context, publicID string) error
	Info(ctx context.Context, publicID string) (*Info, error)
	URL(publicID string, t Transform) (string, error)
}
