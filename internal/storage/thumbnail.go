package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Thumbnailer renders downscaled JPEG previews next to stored image files.
type Thumbnailer struct {
	store *Store
	size  int
}

// NewThumbnailer creates a thumbnailer with a square bounding box of size px.
func NewThumbnailer(store *Store, size int) *Thumbnailer {
	return &Thumbnailer{store: store, size: size}
}

// Generate renders a thumbnail for the stored image at relPath and returns
// the thumbnail's relative path. The thumbnail keeps the source's aspect
// ratio within the bounding box and is always saved as JPEG.
func (t *Thumbnailer) Generate(relPath string) (string, error) {
	src, err := t.store.Abs(relPath)
	if err != nil {
		return "", err
	}

	img, err := imaging.Open(src)
	if err != nil {
		return "", fmt.Errorf("storage: decode image: %w", err)
	}

	thumb := imaging.Fit(img, t.size, t.size, imaging.Lanczos)

	thumbRel := strings.TrimSuffix(relPath, filepath.Ext(relPath)) + "_thumb.jpg"
	dst, err := t.store.Abs(thumbRel)
	if err != nil {
		return "", err
	}

	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("storage: save thumbnail: %w", err)
	}

	return thumbRel, nil
}
