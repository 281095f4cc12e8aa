package imageclean

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 10, A: 255})
		}
	}
	return img
}

// jpegWithComment inserts a COM segment after SOI, standing in for EXIF data.
func jpegWithComment(t *testing.T, comment string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, sample(), &jpeg.Options{Quality: 90}))
	raw := buf.Bytes()
	seg := []byte{0xFF, 0xFE, 0, byte(len(comment) + 2)}
	seg = append(seg, comment...)
	out := append([]byte{}, raw[:2]...)
	out = append(out, seg...)
	return append(out, raw[2:]...)
}

func TestCleanDropsMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(src, jpegWithComment(t, "GPS 47.1N 8.5E"), 0o644))

	out, err := Clean(src, "", DefaultQuality)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo_clean.jpg"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "GPS 47.1N")

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestCleanConvertsByOutputExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0o644))

	out, err := Clean(src, filepath.Join(dir, "nested", "out.bmp"), 0)
	require.NoError(t, err)
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	out, err = Clean(src, filepath.Join(dir, "x.webp"), 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.png"), out)
}

func TestCleanRejectsGarbage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))
	_, err := Clean(src, "", DefaultQuality)
	assert.Error(t, err)
}

func TestCleanDirKeepsLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.png"), buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "broken.png"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	var failed []string
	n, err := CleanDir(dir, "", DefaultQuality, func(r Result) {
		if r.Err != nil {
			failed = append(failed, filepath.Base(r.Src))
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"broken.png"}, failed)
	assert.FileExists(t, filepath.Join(dir, "cleaned", "a.png"))
	assert.FileExists(t, filepath.Join(dir, "cleaned", "sub", "b.png"))

	// A second run must not descend into its own output.
	n, err = CleanDir(dir, "", DefaultQuality, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pics/cat_clean.png", DefaultOutput("pics/cat.webp"))
	assert.True(t, Supported("x.TIFF"))
	assert.False(t, Supported("x.txt"))
	assert.Equal(t, 100, clampQuality(200))
	assert.Equal(t, DefaultQuality, clampQuality(0))
}
