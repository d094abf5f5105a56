package app

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const thumbnailWidth = 300

var ErrUnsupportedImage = errors.New("unsupported image format")

// Store writes uploaded product pictures to disk under random names and
// renders a fixed-width thumbnail next to each original.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SavePictures stores every file and returns the public /images paths
// of the originals. The first failure aborts the batch; files already
// written stay on disk and are harmless orphans.
func (s *Store) SavePictures(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := s.saveOne(fh)
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", fh.Filename, err)
		}
		paths = append(paths, "/images/"+name)
	}
	return paths, nil
}

func (s *Store) saveOne(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", ErrUnsupportedImage
	}

	name := uuid.NewString() + ".jpg"
	if err := writeJPEG(filepath.Join(s.dir, name), img); err != nil {
		return "", err
	}

	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)
	if err := writeJPEG(filepath.Join(s.dir, thumbName(name)), thumb); err != nil {
		return "", err
	}

	return name, nil
}

func thumbName(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + "_thumb" + ext
}

func writeJPEG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return err
	}
	return out.Close()
}
