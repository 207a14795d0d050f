// Package app implements the application layer for wikipath.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/wikipath/internal/engine/pathfinder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	parser       ports.CorpusParser
	cache        ports.GraphCache
	telemetry    ports.Telemetry
	logger       ports.Logger
	settings     domain.Settings
}

// New creates a new App instance using the default settings.
func New(
	loader ports.ConfigLoader,
	parser ports.CorpusParser,
	cache ports.GraphCache,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		parser:       parser,
		cache:        cache,
		telemetry:    telemetry,
		logger:       log,
		settings:     domain.DefaultSettings(),
	}
}

// BuildOptions configures how the link graph is obtained.
type BuildOptions struct {
	// Force ignores an existing cache artifact and parses the corpus again.
	Force bool
}

// Query is a single shortest-path question.
type Query struct {
	From string
	To   string
}

// Result is the answer to a Query. Path is nil when Found is false.
type Result struct {
	Query Query
	Path  []string
	Found bool
}

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// LoadSettings reads the settings file at path and applies it to the App.
// forceJSON enables JSON logs regardless of the file.
func (a *App) LoadSettings(path string, forceJSON bool) (domain.Settings, error) {
	settings, err := a.configLoader.Load(path)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}
	settings.JSONLogs = settings.JSONLogs || forceJSON
	a.settings = settings

	if s, ok := a.logger.(jsonSwitcher); ok && settings.JSONLogs {
		s.SetJSON(true)
	}
	return settings, nil
}

// Settings returns the settings in effect.
func (a *App) Settings() domain.Settings {
	return a.settings
}

// Build parses the corpus, rewrites redirect links, compacts the graph and
// saves the cache artifact, replacing any previous one.
func (a *App) Build(ctx context.Context, corpus string) (domain.GraphStats, error) {
	g, err := a.build(ctx, corpus)
	if err != nil {
		return domain.GraphStats{}, err
	}
	return g.Stats(), nil
}

// Graph returns the link graph for corpus, loading the cache artifact when one
// exists and building it otherwise.
func (a *App) Graph(ctx context.Context, corpus string, opts BuildOptions) (*domain.LinkGraph, error) {
	path := a.cache.ArtifactPath(corpus, a.settings.CacheDir)
	if opts.Force || !a.cache.Exists(path) {
		return a.build(ctx, corpus)
	}

	_, vertex := a.telemetry.Record(ctx, "load cache")
	g, err := a.cache.Load(path)
	if err == nil {
		vertex.Cached()
		vertex.Complete(nil)
		a.logger.Info(fmt.Sprintf("loaded graph cache %s", path))
		return g, nil
	}
	vertex.Complete(err)

	if !a.settings.FallbackOnCorrupt {
		return nil, errors.Join(domain.ErrGraphBuildFailed, err)
	}
	a.logger.Warn(fmt.Sprintf("graph cache %s is unusable, parsing corpus again", path))
	return a.build(ctx, corpus)
}

// FindPath returns a shortest path between two titles of corpus.
func (a *App) FindPath(
	ctx context.Context,
	corpus, origin, destination string,
	opts BuildOptions,
) ([]string, bool, error) {
	g, err := a.Graph(ctx, corpus, opts)
	if err != nil {
		return nil, false, err
	}
	path, ok := pathfinder.NewFinder(g).FindPath(origin, destination)
	return path, ok, nil
}

// FindPaths answers several queries against the same graph concurrently.
// Results are returned in query order.
func (a *App) FindPaths(ctx context.Context, corpus string, queries []Query, opts BuildOptions) ([]Result, error) {
	g, err := a.Graph(ctx, corpus, opts)
	if err != nil {
		return nil, err
	}

	finder := pathfinder.NewFinder(g)
	results := make([]Result, len(queries))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, q := range queries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, ok := finder.FindPath(q.From, q.To)
			results[i] = Result{Query: q, Path: path, Found: ok}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, zerr.Wrap(err, "path queries interrupted")
	}
	return results, nil
}

// Stats returns the size of the link graph for corpus.
func (a *App) Stats(ctx context.Context, corpus string, opts BuildOptions) (domain.GraphStats, error) {
	g, err := a.Graph(ctx, corpus, opts)
	if err != nil {
		return domain.GraphStats{}, err
	}
	return g.Stats(), nil
}

func (a *App) build(ctx context.Context, corpus string) (*domain.LinkGraph, error) {
	parseCtx, vertex := a.telemetry.Record(ctx, "parse")
	g, err := a.parser.Parse(parseCtx, corpus, ports.ParseOptions{
		Interval: a.settings.ProgressInterval,
		Progress: func(records int) {
			msg := fmt.Sprintf("parsed %s pages", humanize.Comma(int64(records)))
			vertex.Log(domain.LogLevelInfo, msg)
			a.logger.Info(msg)
		},
	})
	vertex.Complete(err)
	if err != nil {
		return nil, errors.Join(domain.ErrGraphBuildFailed, err)
	}

	rewritten := g.RewriteAliases()
	g.Compact()
	stats := g.Stats()
	a.logger.Info(fmt.Sprintf("built graph with %s pages, %s links, %s redirects (%s links rewritten)",
		humanize.Comma(int64(stats.Nodes)),
		humanize.Comma(int64(stats.Edges)), //nolint:gosec // Edge counts fit in int64
		humanize.Comma(int64(stats.Aliases)),
		humanize.Comma(int64(rewritten)),
	))

	path := a.cache.ArtifactPath(corpus, a.settings.CacheDir)
	_, saveVertex := a.telemetry.Record(ctx, "save cache")
	err = a.cache.Save(g, path, a.settings.Compression)
	saveVertex.Complete(err)
	if err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("saved graph cache %s", path))

	return g, nil
}
