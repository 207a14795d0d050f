package ports

import "go.trai.ch/wikipath/internal/core/domain"

// GraphCache defines the interface for persisting a finished link graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GraphCache interface {
	// ArtifactPath returns the artifact location for a corpus.
	// An empty cacheDir places the artifact next to the corpus.
	ArtifactPath(corpusPath, cacheDir string) string

	// Exists reports whether an artifact is present at path.
	// The artifact is trusted without checking it against the corpus.
	Exists(path string) bool

	// Save writes the graph to path, replacing any existing artifact.
	Save(graph *domain.LinkGraph, path string, compression domain.Compression) error

	// Load reads the graph stored at path.
	Load(path string) (*domain.LinkGraph, error)
}
