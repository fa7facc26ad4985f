// Package media integrates the external image host. Binary content never
// touches the database; only the host's stable URLs are persisted.
package media

import (
	"context"
	"fmt"
	"strings"

	"warble/internal/middleware"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the interface handlers and services depend on. Upload accepts
// a data URI, remote URL, or local path (whatever the host SDK accepts) and
// returns the stable secure URL. Destroy removes a previously uploaded
// asset by public ID.
type Uploader interface {
	Upload(ctx context.Context, source string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryUploader implements Uploader against Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds an uploader from a CLOUDINARY_URL-style connection
// string. Returns nil when the URL is empty so callers can run without a
// media host in development.
func NewCloudinary(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

// Upload sends the source to Cloudinary and returns the secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, source string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		middleware.MediaUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	middleware.MediaUploads.WithLabelValues("ok").Inc()
	return res.SecureURL, nil
}

// Destroy removes the asset with the given public ID.
func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("media destroy failed: %w", err)
	}
	return nil
}

// PublicIDFromURL derives the Cloudinary public ID from a stored secure URL.
// Delivery URLs look like
// https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.<ext>;
// the public ID is everything after the version segment, minus the extension.
// Returns "" when the URL does not look like a delivery URL.
func PublicIDFromURL(rawURL string) string {
	const marker = "/upload/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len(marker):]

	// Drop the version segment if present (v followed by digits).
	if parts := strings.SplitN(rest, "/", 2); len(parts) == 2 && isVersionSegment(parts[0]) {
		rest = parts[1]
	}
	if rest == "" {
		return ""
	}

	// Strip the file extension from the last segment.
	if dot := strings.LastIndex(rest, "."); dot > strings.LastIndex(rest, "/") {
		rest = rest[:dot]
	}
	return rest
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
