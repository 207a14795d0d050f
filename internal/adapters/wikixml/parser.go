// Package wikixml builds a link graph from a MediaWiki XML export.
//
// The export is read as a stream of <page> records; only one page subtree is
// held in memory at a time.
package wikixml

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/zerr"
)

// Elements are matched by local name so that default-namespace and
// prefixed (<mw:page>) exports read the same.
const pageXPath = "//*[local-name()='page']"

var (
	titleExpr    = xpath.MustCompile("*[local-name()='title']")
	redirectExpr = xpath.MustCompile("*[local-name()='redirect']")
	textExpr     = xpath.MustCompile("*[local-name()='revision']/*[local-name()='text']")
)

var _ ports.CorpusParser = (*Parser)(nil)

// Parser implements ports.CorpusParser for MediaWiki XML exports.
type Parser struct {
	logger ports.Logger
}

// NewParser creates a new Parser.
func NewParser(logger ports.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse streams the corpus file at path into a new link graph.
func (p *Parser) Parse(ctx context.Context, path string, opts ports.ParseOptions) (*domain.LinkGraph, error) {
	r, err := openCorpus(path)
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck // Read-only file

	g, err := p.ParseReader(ctx, r, opts)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return g, nil
}

// ParseReader streams an uncompressed export from r into a new link graph.
//
// Redirect pages become aliases and contribute no links. Every other page
// becomes a node linked to the targets found in its revision text; a page
// without text is a node with no links. Pages without a title are skipped.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, opts ports.ParseOptions) (*domain.LinkGraph, error) {
	sp, err := xmlquery.CreateStreamParser(r, pageXPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create stream parser")
	}

	g := domain.NewLinkGraph()
	records := 0
	skipped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(domain.ErrParseCanceled, zerr.With(err, "records", records))
		}

		page, err := sp.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(domain.ErrCorpusMalformed, zerr.With(err, "records", records))
		}

		if !addPage(g, page) {
			skipped++
		}

		records++
		if opts.Progress != nil && opts.Interval > 0 && records%opts.Interval == 0 {
			opts.Progress(records)
		}
	}

	if p.logger != nil {
		if records == 0 {
			p.logger.Warn("corpus contains no <page> records")
		}
		if skipped > 0 {
			p.logger.Warn(fmt.Sprintf("skipped %d pages without a title", skipped))
		}
	}

	return g, nil
}

// addPage records one page in g and reports whether it was usable.
func addPage(g *domain.LinkGraph, page *xmlquery.Node) bool {
	titleNode := xmlquery.QuerySelector(page, titleExpr)
	if titleNode == nil {
		return false
	}
	title := titleNode.InnerText()
	if title == "" {
		return false
	}

	if redirect := xmlquery.QuerySelector(page, redirectExpr); redirect != nil {
		if target := redirect.SelectAttr("title"); target != "" {
			g.AddAlias(title, target)
			return true
		}
	}

	var links []string
	for _, text := range xmlquery.QuerySelectorAll(page, textExpr) {
		links = append(links, ExtractLinks(text.InnerText())...)
	}
	g.Add(title, links)
	return true
}
