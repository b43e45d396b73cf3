// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rwcarlsen/goexif/exif"
)

// imageExts lists the raster formats accepted for conversion.
var imageExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".gif"}

// pdfcpuNative lists extensions the PDF importer reads directly; the rest
// are re-encoded to PNG first.
var pdfcpuNative = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// orientationError marks an EXIF orientation value outside 1..8.
type orientationError struct {
	value int
}

func (e *orientationError) Error() string {
	return fmt.Sprintf("invalid rotation value %d", e.value)
}

// transposeByOrientation maps EXIF orientations 2..8 to the transform that
// uprights the image. Orientation 1 needs none.
var transposeByOrientation = map[int]func(image.Image) *image.NRGBA{
	2: imaging.FlipH,
	3: imaging.Rotate180,
	4: imaging.FlipV,
	5: imaging.Transpose,
	6: imaging.Rotate270,
	7: imaging.Transverse,
	8: imaging.Rotate90,
}

// imageStrategy wraps a raster image as a single-page PDF sized to the
// image. EXIF rotation is handled in up to three passes: honor the tag
// strictly, re-decode leniently, then import the pixels as stored.
type imageStrategy struct{}

func (s *imageStrategy) convert(inputPath, tempDir string) (string, error) {
	outPath := filepath.Join(tempDir, outName("img", inputPath))

	err := s.convertStrict(inputPath, tempDir, outPath)
	if err == nil {
		return outPath, nil
	}
	if !isRotationError(err) {
		return "", &ConversionError{Path: inputPath, Reason: "converting image", Err: err}
	}

	// The rotation data is unusable. Re-decode with lenient auto-
	// orientation, which ignores damaged tags instead of failing.
	if lerr := s.convertLenient(inputPath, tempDir, outPath); lerr == nil {
		return outPath, nil
	}

	// Last resort: the pixels as stored, no orientation handling at all.
	if perr := s.convertPlain(inputPath, tempDir, outPath); perr != nil {
		return "", &ConversionError{Path: inputPath, Reason: "converting image", Err: perr}
	}
	return outPath, nil
}

// convertStrict reads the EXIF orientation and applies it exactly. Upright
// images in importer-native formats pass through without re-encoding.
func (s *imageStrategy) convertStrict(inputPath, tempDir, outPath string) error {
	orient, err := readOrientation(inputPath)
	if err != nil {
		return err
	}
	if orient == 1 && pdfcpuNative[normalizeExt(inputPath)] {
		return importPDF(inputPath, outPath)
	}

	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(inputPath), err)
	}
	if fix := transposeByOrientation[orient]; fix != nil {
		img = fix(img)
	}
	return encodeAndImport(img, tempDir, "rot_"+stem(inputPath)+".png", outPath)
}

// convertLenient re-decodes with auto-orientation, which tolerates EXIF the
// strict pass rejects, and imports the normalized copy.
func (s *imageStrategy) convertLenient(inputPath, tempDir, outPath string) error {
	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(inputPath), err)
	}
	return encodeAndImport(img, tempDir, "fixed_"+stem(inputPath)+".png", outPath)
}

// convertPlain imports the original bytes with no orientation inspection.
func (s *imageStrategy) convertPlain(inputPath, tempDir, outPath string) error {
	if pdfcpuNative[normalizeExt(inputPath)] {
		return importPDF(inputPath, outPath)
	}
	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(inputPath), err)
	}
	return encodeAndImport(img, tempDir, "plain_"+stem(inputPath)+".png", outPath)
}

// encodeAndImport writes img as PNG under tempDir and imports it. PNG
// carries no orientation tag, so the import sees the pixels as final.
func encodeAndImport(img image.Image, tempDir, name, outPath string) error {
	staged := filepath.Join(tempDir, name)
	if err := imaging.Save(img, staged); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return importPDF(staged, outPath)
}

// importPDF wraps one image file as a single-page PDF sized to the image.
func importPDF(imgPath, outPath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ImportImagesFile([]string{imgPath}, outPath, nil, conf); err != nil {
		return fmt.Errorf("importing %s: %w", filepath.Base(imgPath), err)
	}
	return nil
}

// readOrientation returns the EXIF orientation of the image at path. Files
// without readable EXIF data, or without the tag, count as upright (1). A
// tag carrying a value outside 1..8 is an orientationError.
func readOrientation(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 1, nil
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1, nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, &orientationError{value: -1}
	}
	if v < 1 || v > 8 {
		return 0, &orientationError{value: v}
	}
	return v, nil
}

// isRotationError classifies failures the fallback chain may retry. The
// message match is loose on purpose: rotation failures surface from the
// EXIF reader and from the importer, and the wording differs between them.
func isRotationError(err error) bool {
	var oe *orientationError
	if errors.As(err, &oe) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rotation") || strings.Contains(msg, "orientation")
}
