package images

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	"shopfront.GO/config"
	productRepo "shopfront.GO/model/repository/product"
)

// maxEdge is the longest side stored images are resized down to.
const maxEdge = 1200

// entryNameRe matches {color_sku}_{n}.{ext}. The color_sku part may itself
// contain underscores, so the match is anchored on the trailing number. Only
// the extension is case-insensitive; SKUs keep their catalog casing.
var entryNameRe = regexp.MustCompile(`^(.+)_(\d+)\.(?i:jpe?g|png|webp)$`)

// ZipResult reports one upload or preview run.
type ZipResult struct {
	TotalEntries int      `json:"total_entries"`
	Stored       int      `json:"stored"`
	Skipped      int      `json:"skipped"`
	Matched      []string `json:"matched,omitempty"`
	Unmatched    []string `json:"unmatched,omitempty"`
	Warnings     []string `json:"warnings"`
}

// ProcessZip walks a ZIP of product images named {color_sku}_{n}.{ext},
// re-encodes each as webp resized to maxEdge, and stores it under the media
// dir. In dry-run mode nothing is written; entries are only matched against
// the known color SKUs so the admin can check a ZIP before committing.
func ProcessZip(db *gorm.DB, zr *zip.Reader, category string, dryRun bool) (*ZipResult, error) {
	repo := productRepo.NewProductRepository(db)
	known, err := repo.KnownColorSKUs(category)
	if err != nil {
		return nil, fmt.Errorf("load color SKUs: %w", err)
	}

	res := &ZipResult{}
	counts := make(map[string]int)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		res.TotalEntries++
		name := filepath.Base(f.Name)
		m := entryNameRe.FindStringSubmatch(name)
		if m == nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: name must be {color_sku}_{n}.{jpg|png|webp}", name))
			continue
		}
		colorSKU, numStr := m[1], m[2]
		if _, ok := known[colorSKU]; !ok {
			res.Skipped++
			res.Unmatched = append(res.Unmatched, name)
			continue
		}
		res.Matched = append(res.Matched, name)
		num, _ := strconv.Atoi(numStr)
		if dryRun {
			continue
		}
		if err := storeEntry(f, colorSKU, num); err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		res.Stored++
		// count_images only advances for renditions actually on disk
		if num > counts[colorSKU] {
			counts[colorSKU] = num
		}
	}

	if !dryRun {
		for colorSKU, count := range counts {
			if err := repo.SetCountImages(colorSKU, count); err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: update count_images: %v", colorSKU, err))
			}
		}
	}
	return res, nil
}

// storeEntry decodes one archive entry and writes the webp rendition.
func storeEntry(f *zip.File, colorSKU string, num int) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	img = resize(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}

	dir := config.AppConfig.MediaDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dir, fmt.Sprintf("%s_%d.webp", colorSKU, num))
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

func resize(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxEdge && b.Dy() <= maxEdge {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxEdge, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxEdge, imaging.Lanczos)
}
