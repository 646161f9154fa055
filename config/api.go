package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths (health check and the read-only dish list)
	return []string{"/healthz", "/api/dishes/list"}
}
