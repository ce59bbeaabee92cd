package redis

const (
	// KeyPrefixLocal is the prefix for local game documents
	KeyPrefixLocal = "games:local:"
	// KeyPrefixCatalog is the prefix for catalog game documents
	KeyPrefixCatalog = "games:catalog:"
	// KeyLocalIndex is the sorted set of local game IDs, scored by creation time (ms)
	KeyLocalIndex = "games:index:local"
	// KeyCatalogIndex is the sorted set of catalog game IDs, all at score 0 so
	// members sort by ID
	KeyCatalogIndex = "games:index:catalog"
	// KeyUsers is the hash of username -> user document
	KeyUsers = "games:users"
)
