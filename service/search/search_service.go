package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
	productRepo "shopfront.GO/model/repository/product"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService is the optional full-text layer over the variant table.
// When Elasticsearch is unreachable the service stays constructed but every
// query fails with a "not configured" error, so the storefront's facet
// filtering keeps working without it.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "shopfront_variants"
	}
	// No host means search is off; facet filtering carries the storefront.
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}

	return &SearchService{
		client: client,
		index:  index,
	}
}

// Enabled reports whether a client was constructed.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// Search runs a text query over name, brand and SKU fields and resolves the
// hits back into DB rows, ranked by score.
func (s *SearchService) Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]entity.ProductVariant, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "brand^2", "sku", "variant_sku"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					VariantSKU string `json:"variant_sku"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	var skus []string
	for _, hit := range esResp.Hits.Hits {
		if hit.Source.VariantSKU != "" {
			skus = append(skus, hit.Source.VariantSKU)
		}
	}
	return productRepo.NewProductRepository(db).FindByVariantSKUs(skus)
}

// IndexVariants pushes variant documents into the search index with the
// bulk API. Call after imports; errors leave the old documents in place.
func (s *SearchService) IndexVariants(ctx context.Context, rows []entity.ProductVariant) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	if len(rows) == 0 {
		return nil
	}

	var buf strings.Builder
	for i := range rows {
		meta, _ := json.Marshal(map[string]interface{}{
			"index": map[string]interface{}{"_index": s.index, "_id": rows[i].VariantSKU},
		})
		doc, _ := json.Marshal(map[string]interface{}{
			"variant_sku": rows[i].VariantSKU,
			"sku":         rows[i].SKU,
			"color_sku":   rows[i].ColorSKU,
			"name":        rows[i].Name,
			"brand":       rows[i].Brand,
			"category":    rows[i].Category,
		})
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := s.client.Bulk(
		strings.NewReader(buf.String()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk error: %s", res.String())
	}
	return nil
}
