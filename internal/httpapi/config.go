package httpapi

// maxBodyBytes caps request bodies on JSON endpoints. Zero means unlimited.
var maxBodyBytes int64

// SetMaxBodyBytes configures the maximum request body size (<=0 disables the cap).
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 0
		return
	}
	maxBodyBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
// Empty methods/headers fall back to what /extract_entities needs.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(headers) == 0 {
		headers = []string{"Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
