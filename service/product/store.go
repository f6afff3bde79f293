package product

import (
	"sync"

	"gorm.io/gorm"

	"shopfront.GO/catalog"
)

var (
	storeInstance *catalog.Store
	storeOnce     sync.Once
)

// CatalogStore returns the shared catalog store, creating it on first call
// with a loader over the given DB. Every later caller gets the same store
// regardless of the db argument.
func CatalogStore(db *gorm.DB) *catalog.Store {
	storeOnce.Do(func() {
		storeInstance = catalog.NewStore(NewCatalogLoader(db))
	})
	return storeInstance
}
