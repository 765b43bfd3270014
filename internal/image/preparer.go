package image

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxFileSize is the byte ceiling above which images are
	// re-encoded. Files at or under it pass through untouched.
	DefaultMaxFileSize = 15 * 1024 * 1024
	// DefaultMaxDimension caps both output axes in pixels.
	DefaultMaxDimension = 4096
	// DefaultQuality is the fixed JPEG quality used for re-encoding.
	DefaultQuality = 85
)

var (
	ErrImageDecode = errors.New("image could not be decoded")
	ErrImageEncode = errors.New("image re-encoding produced no output")
)

// File is an in-memory upload candidate.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Preparer shrinks oversized images down to a size the upstream accepts.
type Preparer struct {
	MaxFileSize  int64
	MaxDimension int
	Quality      int
}

func NewPreparer() *Preparer {
	return &Preparer{
		MaxFileSize:  DefaultMaxFileSize,
		MaxDimension: DefaultMaxDimension,
		Quality:      DefaultQuality,
	}
}

// Prepare returns the input byte-identical when it is not an image or
// already fits under the size ceiling. Otherwise it decodes, scales down to
// fit MaxDimension on both axes (never up, aspect ratio preserved), and
// re-encodes as JPEG regardless of the source format, renaming the logical
// extension to match. Failures are terminal; the caller must pick a new file.
func (p *Preparer) Prepare(file File) (File, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return file, nil
	}
	if int64(len(file.Data)) <= p.MaxFileSize {
		return file, nil
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > p.MaxDimension || height > p.MaxDimension {
		// Scale by the axis needing the larger shrink; the other follows
		// from the aspect ratio.
		if width > height {
			img = imaging.Resize(img, p.MaxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, p.MaxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrImageEncode, err)
	}
	if buf.Len() == 0 {
		return File{}, ErrImageEncode
	}

	return File{
		Name:        jpegName(file.Name),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
	}, nil
}

func jpegName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
