package domain

import "go.trai.ch/zerr"

var (
	// ErrCorpusOpenFailed is returned when the corpus file cannot be opened.
	ErrCorpusOpenFailed = zerr.New("failed to open corpus")

	// ErrCorpusDecompressFailed is returned when a compressed corpus stream cannot be initialized.
	ErrCorpusDecompressFailed = zerr.New("failed to decompress corpus")

	// ErrCorpusMalformed is returned when the corpus is not well-formed XML or is truncated.
	ErrCorpusMalformed = zerr.New("malformed corpus")

	// ErrParseCanceled is returned when parsing is interrupted by context cancellation.
	ErrParseCanceled = zerr.New("corpus parsing canceled")

	// ErrCacheReadFailed is returned when the cache artifact cannot be opened or read.
	ErrCacheReadFailed = zerr.New("failed to read graph cache")

	// ErrCacheNotArtifact is returned when a file does not carry the cache artifact tag.
	ErrCacheNotArtifact = zerr.New("file is not a graph cache artifact")

	// ErrCacheVersionUnsupported is returned when the artifact format version is unknown.
	ErrCacheVersionUnsupported = zerr.New("unsupported graph cache version")

	// ErrCacheCorrupt is returned when the artifact fails its checksum or cannot be decoded.
	ErrCacheCorrupt = zerr.New("graph cache is corrupt")

	// ErrCacheWriteFailed is returned when the cache artifact cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write graph cache")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the settings file holds an invalid value.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrGraphBuildFailed is returned when the graph could not be parsed or loaded.
	ErrGraphBuildFailed = zerr.New("failed to build link graph")
)
