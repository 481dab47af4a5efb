package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"hugox-backend/apperror"
	"hugox-backend/models"
)

// ErrNotConfigured is returned when no CLOUDINARY_URL was given.
var ErrNotConfigured = apperror.Upstream("Image storage not configured", errors.New("cloudinary url is empty"))

// Cloudinary stores images on Cloudinary. A nil *Cloudinary answers every
// call with ErrNotConfigured.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary returns nil, nil when url is empty.
func NewCloudinary(url string) (*Cloudinary, error) {
	if url == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, p Preset, filename string, r io.Reader) (*Image, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         p.Folder,
		PublicID:       assetName(filename),
		Overwrite:      api.Bool(false),
		ResourceType:   "image",
		Transformation: p.Transformation,
	})
	if err != nil {
		return nil, apperror.Upstream("Upload failed", err)
	}
	if res.Error.Message != "" {
		return nil, apperror.Upstream("Upload failed", errors.New(res.Error.Message))
	}
	return &Image{
		PublicID:  res.PublicID,
		SecureURL: res.SecureURL,
		URL:       res.SecureURL,
		Width:     res.Width,
		Height:    res.Height,
		Format:    res.Format,
		Bytes:     res.Bytes,
	}, nil
}

func (s *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	if s == nil {
		return ErrNotConfigured
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return apperror.Upstream("Delete failed", err)
	}
	if res.Error.Message != "" {
		return apperror.Upstream("Delete failed", errors.New(res.Error.Message))
	}
	if res.Result == "not found" {
		return apperror.NotFound("Image not found")
	}
	return nil
}

func (s *Cloudinary) Info(ctx context.Context, publicID string) (*Info, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	res, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: publicID})
	if err != nil {
		return nil, apperror.Upstream("Failed to get image info", err)
	}
	if res.Error.Message != "" {
		if strings.Contains(strings.ToLower(res.Error.Message), "not found") {
			return nil, apperror.NotFound("Image not found")
		}
		return nil, apperror.Upstream("Failed to get image info", errors.New(res.Error.Message))
	}
	return &Info{
		Image: Image{
			PublicID:  res.PublicID,
			SecureURL: res.SecureURL,
			URL:       res.URL,
			Width:     res.Width,
			Height:    res.Height,
			Format:    res.Format,
			Bytes:     res.Bytes,
		},
		AssetID:      res.AssetID,
		ResourceType: res.ResourceType,
		Type:         res.Type,
		Version:      res.Version,
		CreatedAt:    res.CreatedAt,
	}, nil
}

func (s *Cloudinary) URL(publicID string, t Transform) (string, error) {
	if s == nil {
		return "", ErrNotConfigured
	}
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", apperror.Upstream("Image transformation failed", err)
	}
	img.Transformation = t.String()
	url, err := img.String()
	if err != nil {
		return "", apperror.Upstream("Image transformation failed", err)
	}
	return url, nil
}

// assetName keeps the client file name readable and appends a random suffix.
func assetName(filename string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = models.Slugify(strings.TrimSuffix(name, path.Ext(name)))
	if name == "" {
		return suffix
	}
	return name + "_" + suffix
}
