// Package imageclean strips metadata (EXIF, GPS, comments, colour profiles)
// from images by decoding them and re-encoding only the pixels.
package imageclean

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 95

// CleanedDirName is the default output directory inside a cleaned directory.
const CleanedDirName = "cleaned"

// ErrUnsupported is returned for files whose extension is not an image format
// the cleaner handles.
var ErrUnsupported = errors.New("imageclean: unsupported image format")

var extensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// Supported reports whether path has an image extension the cleaner handles.
func Supported(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// DefaultOutput returns "<stem>_clean<ext>" next to src. WebP sources get a
// .png extension since only the pixels can be written back.
func DefaultOutput(src string) string {
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(src, ext)
	return stem + "_clean" + outputExt(ext)
}

func outputExt(ext string) string {
	if strings.EqualFold(ext, ".webp") {
		return ".png"
	}
	return ext
}

// Clean decodes src and writes a metadata-free copy to dst. An empty dst uses
// DefaultOutput. quality applies to JPEG output and is clamped to [1, 100].
// It returns the path written.
func Clean(src, dst string, quality int) (string, error) {
	if dst == "" {
		dst = DefaultOutput(src)
	} else if strings.EqualFold(filepath.Ext(dst), ".webp") {
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return "", fmt.Errorf("imageclean: decode %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if err := Encode(out, Pixels(img), targetFormat(dst, format), quality); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("imageclean: encode %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

func targetFormat(dst, decoded string) string {
	if f, ok := extensions[strings.ToLower(filepath.Ext(dst))]; ok {
		return f
	}
	return decoded
}

// Pixels copies img into a fresh NRGBA image. Paletted sources are expanded.
func Pixels(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}

// Encode writes img in format. WebP is written as PNG.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality)})
	case "png", "webp":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupported, format)
}

func clampQuality(q int) int {
	switch {
	case q <= 0:
		return DefaultQuality
	case q > 100:
		return 100
	}
	return q
}

// Result reports one file processed by CleanDir.
type Result struct {
	Src string
	Dst string
	Err error
}

// CleanDir cleans every supported image below src into dst, keeping the
// relative layout. An empty dst uses src/cleaned, which is skipped while
// walking. Per-file failures are reported through onResult (may be nil) and
// do not stop the walk. It returns the number of cleaned images.
func CleanDir(src, dst string, quality int, onResult func(Result)) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("imageclean: %s is not a directory", src)
	}
	if dst == "" {
		dst = filepath.Join(src, CleanedDirName)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return 0, err
	}

	cleaned := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, aerr := filepath.Abs(path); aerr == nil && abs == absDst {
				return filepath.SkipDir
			}
			return nil
		}
		if !Supported(path) {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out, cerr := Clean(path, filepath.Join(dst, rel), quality)
		if cerr == nil {
			cleaned++
		}
		if onResult != nil {
			onResult(Result{Src: path, Dst: out, Err: cerr})
		}
		return nil
	})
	return cleaned, err
}
