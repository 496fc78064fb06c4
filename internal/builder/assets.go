// internal/builder/assets.go
package builder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/farskid/farzadyz.me/internal/document"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 85
)

// allowedExts are the file extensions copied from the static directory.
var allowedExts = map[string]bool{
	".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".woff": true, ".woff2": true, ".webmanifest": true,
}

// writeSyntaxCSS writes the code highlighting stylesheet to css/syntax.css.
func writeSyntaxCSS(outputDir string) error {
	var buf bytes.Buffer
	if err := document.WriteSyntaxCSS(&buf); err != nil {
		return fmt.Errorf("failed to generate syntax css: %w", err)
	}
	dest := filepath.Join(outputDir, "css", "syntax.css")
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, buf.Bytes(), 0644)
}

// copyStaticAssets copies files from the static directory to the output directory.
// A missing static directory is not an error.
func copyStaticAssets(staticDir, outputDir string) error {
	if staticDir == "" {
		return nil
	}
	if _, err := os.Stat(staticDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !allowedExts[ext] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		switch ext {
		case ".png", ".jpg", ".jpeg":
			return copyImage(path, dest, ext)
		default:
			return copyFile(path, dest)
		}
	})
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// copyImage copies a raster image, downscaling it to maxImageWidth when it is wider.
// Images that fail to decode are copied as they are.
func copyImage(from, to, ext string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= maxImageWidth {
		return os.WriteFile(to, data, 0644)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return os.WriteFile(to, data, 0644)
	}
	out, err := resizeImage(img, ext)
	if err != nil {
		return fmt.Errorf("failed to resize %s: %w", from, err)
	}
	return os.WriteFile(to, out, 0644)
}

// resizeImage scales img to maxImageWidth keeping its aspect ratio and
// re-encodes it in the format named by ext.
func resizeImage(img image.Image, ext string) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := h * maxImageWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	var err error
	if ext == ".png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
