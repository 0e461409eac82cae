// Package storage forwards uploaded files to the image host and keeps only the URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrDisabled is returned when no image host is configured.
var ErrDisabled = errors.New("image upload is not configured")

// ErrInvalidFile marks uploads rejected before reaching the image host.
var ErrInvalidFile = errors.New("invalid file")

// MaxFileSize bounds a single uploaded image.
const MaxFileSize = 10 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Result is what the image host returned for one file.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader stores images remotely.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (Result, error)
	Destroy(ctx context.Context, publicID string) error
}

// CheckFile rejects files that are too large or not images.
func CheckFile(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		return fmt.Errorf("%w: %s exceeds %d MB", ErrInvalidFile, fh.Filename, MaxFileSize>>20)
	}
	ext := strings.ToLower(path.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s has unsupported extension %q", ErrInvalidFile, fh.Filename, ext)
	}
	return nil
}

// CloudinaryUploader uploads to Cloudinary under a root folder.
type CloudinaryUploader struct {
	cld  *cloudinary.Cloudinary
	root string
}

// NewCloudinaryUploader returns nil when cld is nil so callers can treat uploads as disabled.
func NewCloudinaryUploader(cld *cloudinary.Cloudinary, root string) *CloudinaryUploader {
	if cld == nil {
		return nil
	}
	return &CloudinaryUploader{cld: cld, root: root}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (Result, error) {
	if u == nil {
		return Result{}, ErrDisabled
	}
	if err := CheckFile(fh); err != nil {
		return Result{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res, err := u.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:         path.Join(u.root, folder),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return Result{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return Result{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return Result{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if u == nil {
		return ErrDisabled
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// PublicIDFromURL recovers the asset id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1700000000/store/products/abc.jpg
// (public id "store/products/abc"). ok is false for URLs not served by the host.
func PublicIDFromURL(raw string) (id string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	start := -1
	for i, seg := range segs {
		if seg == "upload" {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(segs) {
		return "", false
	}
	rest := segs[start:]
	for i, seg := range rest {
		if versionSegment.MatchString(seg) {
			rest = rest[i+1:]
			break
		}
	}
	if len(rest) == 0 {
		return "", false
	}
	id = strings.Join(rest, "/")
	return strings.TrimSuffix(id, path.Ext(id)), true
}
