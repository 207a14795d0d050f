package ports

import (
	"context"

	"go.trai.ch/wikipath/internal/core/domain"
)

// ProgressFunc receives the number of pages parsed so far.
type ProgressFunc func(records int)

// ParseOptions configures a corpus parse.
type ParseOptions struct {
	// Progress is called every Interval pages. It may be nil.
	Progress ProgressFunc
	// Interval is the number of pages between Progress calls. Zero disables progress.
	Interval int
}

// CorpusParser builds a link graph from a corpus.
//
//go:generate go run go.uber.org/mock/mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type CorpusParser interface {
	// Parse streams the corpus at path and returns the populated graph.
	// The returned graph has not had its aliases rewritten.
	// A failure leaves no partial graph.
	Parse(ctx context.Context, path string, opts ParseOptions) (*domain.LinkGraph, error)
}
