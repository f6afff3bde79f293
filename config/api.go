package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public storefront paths (catalog, auth bootstrap, health)
	return []string{
		"/api/general/health",
		"/api/general/save_user",
		"/api/general/get_parameters",
		"/api/general/list_reviews",
		"/api/general/create_request",
		"/api/auth/refresh",
		"/api/product/list_products",
		"/api/product/get_product",
		"/api/product/facets",
		"/graphql",
	}
}
