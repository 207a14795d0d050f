package domain

// Compression selects how the cache artifact payload is stored.
type Compression string

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = "none"
	// CompressionXZ stores the payload as an xz stream.
	CompressionXZ Compression = "xz"
)

// Settings holds the user configurable behavior of wikipath.
type Settings struct {
	// ProgressInterval is the number of pages between progress notifications.
	// Zero disables progress notifications.
	ProgressInterval int

	// CacheDir is the directory for cache artifacts. When empty the artifact
	// is written next to the corpus.
	CacheDir string

	// Compression is the artifact payload compression.
	Compression Compression

	// FallbackOnCorrupt re-parses the corpus when the cache cannot be loaded.
	FallbackOnCorrupt bool

	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		ProgressInterval:  DefaultProgressInterval,
		Compression:       CompressionNone,
		FallbackOnCorrupt: true,
	}
}
