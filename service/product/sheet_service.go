package product

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"
)

var sheetClient = &http.Client{Timeout: 60 * time.Second}

// ImportFromSheet downloads a Google Sheets CSV export and runs the variant
// import over it. The URL must be the sheet's export link
// (output=csv); anything else fails on the CSV header parse.
func ImportFromSheet(ctx context.Context, db *gorm.DB, url string, opts ImportOptions) (*ImportResult, error) {
	if url == "" {
		return nil, fmt.Errorf("no sheet URL configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := sheetClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}
	return ImportVariants(db, resp.Body, opts)
}
