package controllers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"hugox-backend/apperror"
	"hugox-backend/logger"
	"hugox-backend/storage"
)

const uploadTimeout = 60 * time.Second

// UploadSingle mengembalikan handler unggah satu gambar untuk preset p.
func (ctrl *Controller) UploadSingle(p storage.Preset) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl.limitBody(c, p, 1)
		header, err := c.FormFile(p.Field)
		if err != nil {
			fail(c, apperror.Validation(p.Field, "No file uploaded"))
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		img, err := ctrl.store(ctx, p, header)
		if err != nil {
			fail(c, err)
			return
		}
		logger.LogAction(c, "upload_image", map[string]interface{}{"preset": p.Name, "public_id": img.PublicID})
		ok(c, "Image uploaded successfully", gin.H{
			"public_id":  img.PublicID,
			"secure_url": img.SecureURL,
			"url":        img.URL,
			"width":      img.Width,
			"height":     img.Height,
			"format":     img.Format,
			"bytes":      img.Bytes,
		})
	}
}

// UploadMultiple mengembalikan handler unggah banyak gambar untuk preset p.
// Field formulir adalah "images".
func (ctrl *Controller) UploadMultiple(p storage.Preset) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl.limitBody(c, p, p.MaxFiles)
		form, err := c.MultipartForm()
		if err != nil {
			fail(c, apperror.Validation("images", "No files uploaded"))
			return
		}
		headers := form.File["images"]
		if len(headers) == 0 {
			fail(c, apperror.Validation("images", "No files uploaded"))
			return
		}
		if len(headers) > p.MaxFiles {
			fail(c, apperror.Validation("images", fmt.Sprintf("Too many files. Maximum is %d files.", p.MaxFiles)))
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
		defer cancel()

		images := make([]*storage.Image, len(headers))
		g, gctx := errgroup.WithContext(ctx)
		for i, h := range headers {
			i, h := i, h
			g.Go(func() (err error) {
				images[i], err = ctrl.store(gctx, p, h)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			fail(c, err)
			return
		}
		logger.LogAction(c, "upload_images", map[string]interface{}{"preset": p.Name, "count": len(images)})
		ok(c, "Images uploaded successfully", gin.H{"images": images})
	}
}

// DeleteImage menangani penghapusan gambar dari penyimpanan.
func (ctrl *Controller) DeleteImage(c *gin.Context) {
	id, err := publicID(c)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	if err := ctrl.Images.Destroy(ctx, id); err != nil {
		fail(c, err)
		return
	}
	logger.LogAction(c, "delete_image", map[string]interface{}{"public_id": id})
	ok(c, "Image deleted successfully", gin.H{"result": "ok"})
}

// GetImageInfo menangani metadata gambar yang tersimpan.
func (ctrl *Controller) GetImageInfo(c *gin.Context) {
	id, err := publicID(c)
	if err != nil {
		fail(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	info, err := ctrl.Images.Info(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"image": info})
}

// TransformImage menangani pembuatan URL turunan. Tidak ada pemrosesan
// gambar di server.
func (ctrl *Controller) TransformImage(c *gin.Context) {
	id, err := publicID(c)
	if err != nil {
		fail(c, err)
		return
	}
	t, err := storage.ParseTransform(c.Query("width"), c.Query("height"), c.Query("crop"), c.Query("quality"), c.Query("format"))
	if err != nil {
		fail(c, err)
		return
	}
	url, err := ctrl.Images.URL(id, t)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"transformed_url": url})
}

func publicID(c *gin.Context) (string, error) {
	id := strings.Trim(c.Param("public_id"), "/ ")
	if id == "" {
		return "", apperror.Validation("public_id", "Public ID is required")
	}
	return id, nil
}

func (ctrl *Controller) maxBytes(p storage.Preset) int64 {
	if p.MaxBytes > 0 {
		return p.MaxBytes
	}
	return ctrl.maxFileSize()
}

// limitBody caps the request body at files times the per-file limit plus
// room for the multipart framing.
func (ctrl *Controller) limitBody(c *gin.Context, p storage.Preset, files int) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxBytes(p)*int64(files)+1<<20)
}

// store checks size and sniffed content type before handing the file to
// the image service.
func (ctrl *Controller) store(ctx context.Context, p storage.Preset, h *multipart.FileHeader) (*storage.Image, error) {
	max := ctrl.maxBytes(p)
	if h.Size > max {
		return nil, apperror.Validation(p.Field, fmt.Sprintf("File too large. Maximum size is %dMB.", max>>20))
	}
	f, err := h.Open()
	if err != nil {
		return nil, apperror.Validation(p.Field, "No file uploaded")
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, apperror.Validation(p.Field, "Only image files are allowed!")
	}
	if !mimetype.EqualsAny(mt.String(), ctrl.allowedTypes()...) {
		return nil, apperror.Validation(p.Field, "Only image files are allowed!")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperror.Upstream("Upload failed", err)
	}
	return ctrl.Images.Upload(ctx, p, h.Filename, f)
}
