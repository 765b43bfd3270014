package image

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG renders a solid image of the given dimensions as PNG bytes.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 180, G: 120, B: 60, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestPreparer_Prepare(t *testing.T) {
	t.Run("non-image files pass through untouched", func(t *testing.T) {
		preparer := NewPreparer()
		file := File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		assert.Equal(t, file, got)
	})

	t.Run("images under the ceiling pass through byte-identical", func(t *testing.T) {
		preparer := NewPreparer()
		data := encodePNG(t, 100, 100)
		file := File{Name: "small.png", ContentType: "image/png", Data: data}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		assert.Equal(t, "small.png", got.Name)
		assert.Equal(t, "image/png", got.ContentType)
		assert.Equal(t, data, got.Data)
	})

	t.Run("image exactly at the ceiling passes through", func(t *testing.T) {
		data := encodePNG(t, 10, 10)
		preparer := &Preparer{MaxFileSize: int64(len(data)), MaxDimension: 4, Quality: 85}
		file := File{Name: "exact.png", ContentType: "image/png", Data: data}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		assert.Equal(t, data, got.Data)
	})

	t.Run("oversized wide image is resized on the width axis", func(t *testing.T) {
		preparer := &Preparer{MaxFileSize: 10, MaxDimension: 50, Quality: 85}
		file := File{Name: "wide.png", ContentType: "image/png", Data: encodePNG(t, 200, 100)}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		assert.Equal(t, "wide.jpg", got.Name)
		assert.Equal(t, "image/jpeg", got.ContentType)

		img, err := imaging.Decode(bytes.NewReader(got.Data))
		require.NoError(t, err)
		assert.Equal(t, 50, img.Bounds().Dx())
		assert.Equal(t, 25, img.Bounds().Dy())
	})

	t.Run("oversized tall image is resized on the height axis", func(t *testing.T) {
		preparer := &Preparer{MaxFileSize: 10, MaxDimension: 50, Quality: 85}
		file := File{Name: "tall.png", ContentType: "image/png", Data: encodePNG(t, 100, 200)}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		img, err := imaging.Decode(bytes.NewReader(got.Data))
		require.NoError(t, err)
		assert.Equal(t, 25, img.Bounds().Dx())
		assert.Equal(t, 50, img.Bounds().Dy())
	})

	t.Run("oversized but small-dimension image is re-encoded without scaling", func(t *testing.T) {
		preparer := &Preparer{MaxFileSize: 10, MaxDimension: 4096, Quality: 85}
		file := File{Name: "dense.png", ContentType: "image/png", Data: encodePNG(t, 30, 20)}

		got, err := preparer.Prepare(file)

		require.NoError(t, err)
		assert.Equal(t, "dense.jpg", got.Name)
		assert.Equal(t, "image/jpeg", got.ContentType)

		img, err := imaging.Decode(bytes.NewReader(got.Data))
		require.NoError(t, err)
		assert.Equal(t, 30, img.Bounds().Dx())
		assert.Equal(t, 20, img.Bounds().Dy())
	})

	t.Run("undecodable image data is a terminal error", func(t *testing.T) {
		preparer := &Preparer{MaxFileSize: 2, MaxDimension: 50, Quality: 85}
		file := File{Name: "broken.jpg", ContentType: "image/jpeg", Data: []byte("not an image")}

		_, err := preparer.Prepare(file)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrImageDecode)
	})

	t.Run("extension is replaced, not appended", func(t *testing.T) {
		assert.Equal(t, "photo.jpg", jpegName("photo.png"))
		assert.Equal(t, "photo.jpg", jpegName("photo.jpeg"))
		assert.Equal(t, "archive.tar.jpg", jpegName("archive.tar.gz"))
		assert.Equal(t, "noext.jpg", jpegName("noext"))
	})
}
