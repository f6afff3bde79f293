package images

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
)

func imagesDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("images_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.ProductVariant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Create(&entity.ProductVariant{VariantSKU: "V-1", SKU: "P-1", ColorSKU: "P-1-RED", Category: "Одежда", Price: 100})
	db.Create(&entity.ProductVariant{VariantSKU: "V-2", SKU: "P-2", ColorSKU: "P-2-BLK", Category: "Обувь", Price: 100})
	return db
}

func makeZip(t *testing.T, names ...string) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, n := range names {
		f, err := w.Create(n)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		f.Write([]byte("not a real image, dry run never decodes"))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip reader: %v", err)
	}
	return zr
}

func TestProcessZip_DryRunMatching(t *testing.T) {
	db := imagesDB(t)
	zr := makeZip(t,
		"P-1-RED_1.jpg",
		"P-1-RED_2.JPG", // extension case ignored
		"P-9-NOPE_1.png",
		"readme.txt",
	)

	res, err := ProcessZip(db, zr, "", true)
	if err != nil {
		t.Fatalf("ProcessZip: %v", err)
	}
	if res.TotalEntries != 4 {
		t.Errorf("TotalEntries = %d", res.TotalEntries)
	}
	if len(res.Matched) != 2 {
		t.Errorf("Matched = %v, want both P-1-RED entries", res.Matched)
	}
	if len(res.Unmatched) != 1 || res.Unmatched[0] != "P-9-NOPE_1.png" {
		t.Errorf("Unmatched = %v", res.Unmatched)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one for readme.txt", res.Warnings)
	}
	if res.Stored != 0 {
		t.Errorf("Stored = %d, want 0 in dry run", res.Stored)
	}
	// dry run never touches count_images
	var row entity.ProductVariant
	db.Where("color_sku = ?", "P-1-RED").First(&row)
	if row.CountImages != 0 {
		t.Errorf("count_images = %d, want 0", row.CountImages)
	}
}

func TestProcessZip_CategoryRestrictsMatches(t *testing.T) {
	db := imagesDB(t)
	zr := makeZip(t, "P-1-RED_1.jpg", "P-2-BLK_1.jpg")

	res, err := ProcessZip(db, zr, "Одежда", true)
	if err != nil {
		t.Fatalf("ProcessZip: %v", err)
	}
	if len(res.Matched) != 1 || res.Matched[0] != "P-1-RED_1.jpg" {
		t.Errorf("Matched = %v", res.Matched)
	}
	if len(res.Unmatched) != 1 {
		t.Errorf("Unmatched = %v, want the shoe SKU rejected", res.Unmatched)
	}
}

func TestProcessZip_UndecodableEntryLeavesCountAlone(t *testing.T) {
	db := imagesDB(t)
	// matches a known SKU, but the payload is not a decodable image
	zr := makeZip(t, "P-1-RED_1.jpg")

	res, err := ProcessZip(db, zr, "", false)
	if err != nil {
		t.Fatalf("ProcessZip: %v", err)
	}
	if res.Stored != 0 {
		t.Errorf("Stored = %d, want 0", res.Stored)
	}
	if res.Skipped != 1 || len(res.Warnings) != 1 {
		t.Errorf("skipped/warnings = %d/%d, want 1/1: %v", res.Skipped, len(res.Warnings), res.Warnings)
	}
	// no rendition on disk means no advertised image
	var row entity.ProductVariant
	db.Where("color_sku = ?", "P-1-RED").First(&row)
	if row.CountImages != 0 {
		t.Errorf("count_images = %d, want 0 after failed store", row.CountImages)
	}
}

func TestEntryNameRe_UnderscoresInSKU(t *testing.T) {
	m := entryNameRe.FindStringSubmatch("P_1_RED_3.webp")
	if m == nil {
		t.Fatal("no match")
	}
	if m[1] != "P_1_RED" || m[2] != "3" {
		t.Errorf("groups = %q %q", m[1], m[2])
	}
	if entryNameRe.FindStringSubmatch("P-1-RED.jpg") != nil {
		t.Error("name without index matched")
	}
}
