package wikixml_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"go.trai.ch/wikipath/internal/adapters/wikixml"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/wikipath/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const namespacedDump = `<?xml version="1.0" encoding="utf-8"?>
<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo><sitename>Test</sitename></siteinfo>
  <page>
    <title>Alpha</title>
    <revision><text>See [[Beta]] and [[Gamma|the third letter]].</text></revision>
  </page>
  <page>
    <title>Beta</title>
    <revision><text>Back to [[alpha]].</text></revision>
  </page>
  <page>
    <title>Gamma letter</title>
    <redirect title="Gamma" />
    <revision><text>#REDIRECT [[Gamma]]</text></revision>
  </page>
  <page>
    <title>Empty</title>
    <revision></revision>
  </page>
</mediawiki>
`

const plainDump = `<mediawiki>
  <page>
    <title>One</title>
    <revision><text>[[Two]]</text></revision>
  </page>
</mediawiki>
`

func parse(t *testing.T, input string) *domain.LinkGraph {
	t.Helper()
	p := wikixml.NewParser(nil)
	g, err := p.ParseReader(context.Background(), strings.NewReader(input), ports.ParseOptions{})
	require.NoError(t, err)
	return g
}

func TestParser_NamespacedDump(t *testing.T) {
	g := parse(t, namespacedDump)

	assert.ElementsMatch(t, []string{"beta", "gamma"}, g.Neighbors("Alpha"))
	assert.Equal(t, []string{"alpha"}, g.Neighbors("beta"))
	assert.True(t, g.Contains("empty"), "page without text is a node")
	assert.Empty(t, g.Neighbors("empty"))

	assert.Equal(t, "gamma", g.Resolve("Gamma Letter"))
	assert.False(t, g.Contains("gamma letter"), "redirect pages contribute no node")

	stats := g.Stats()
	assert.Equal(t, 3, stats.Nodes)
	assert.Equal(t, 1, stats.Aliases)
}

func TestParser_PlainDump(t *testing.T) {
	g := parse(t, plainDump)

	assert.Equal(t, []string{"two"}, g.Neighbors("one"))
}

func TestParser_PrefixedDump(t *testing.T) {
	input := `<mw:mediawiki xmlns:mw="http://www.mediawiki.org/xml/export-0.10/">
  <mw:page>
    <mw:title>Alpha</mw:title>
    <mw:revision><mw:text>[[Beta]]</mw:text></mw:revision>
  </mw:page>
  <mw:page>
    <mw:title>Beta</mw:title>
    <mw:revision><mw:text>[[Alpha]]</mw:text></mw:revision>
  </mw:page>
  <mw:page>
    <mw:title>First letter</mw:title>
    <mw:redirect title="Alpha" />
  </mw:page>
</mw:mediawiki>`

	g := parse(t, input)

	assert.Equal(t, 2, g.Stats().Nodes)
	assert.Equal(t, []string{"beta"}, g.Neighbors("alpha"))
	assert.Equal(t, "alpha", g.Resolve("first letter"))
}

func TestParser_WarnsWithoutPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("corpus contains no <page> records")

	p := wikixml.NewParser(logger)
	g, err := p.ParseReader(context.Background(), strings.NewReader("<feed><entry>x</entry></feed>"), ports.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Stats().Nodes)
}

func TestParser_SkipsUntitledPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("skipped 1 pages without a title")

	input := `<mediawiki>
  <page><revision><text>[[Lost]]</text></revision></page>
  <page><title>Kept</title></page>
</mediawiki>`

	p := wikixml.NewParser(logger)
	g, err := p.ParseReader(context.Background(), strings.NewReader(input), ports.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Stats().Nodes)
	assert.True(t, g.Contains("kept"))
}

func TestParser_Progress(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<mediawiki>")
	for i := range 25 {
		sb.WriteString("<page><title>p")
		sb.WriteString(strings.Repeat("x", i))
		sb.WriteString("</title></page>")
	}
	sb.WriteString("</mediawiki>")

	var reported []int
	p := wikixml.NewParser(nil)
	_, err := p.ParseReader(context.Background(), strings.NewReader(sb.String()), ports.ParseOptions{
		Interval: 10,
		Progress: func(records int) { reported = append(reported, records) },
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20}, reported)
}

// syntheticCorpus generates an export page by page, so the whole document
// never exists in memory. Titles cycle through a small pool.
type syntheticCorpus struct {
	pages  int
	next   int
	body   string
	opened bool
	closed bool
	buf    bytes.Buffer
}

func (c *syntheticCorpus) Read(p []byte) (int, error) {
	if c.buf.Len() == 0 && !c.fill() {
		return 0, io.EOF
	}
	return c.buf.Read(p)
}

func (c *syntheticCorpus) fill() bool {
	switch {
	case !c.opened:
		c.opened = true
		c.buf.WriteString("<mediawiki>\n")
	case c.next < c.pages:
		_, _ = fmt.Fprintf(&c.buf,
			"<page><title>Page %d</title><revision><text>[[Page %d]] %s</text></revision></page>\n",
			c.next%50, (c.next+1)%50, c.body)
		c.next++
	case !c.closed:
		c.closed = true
		c.buf.WriteString("</mediawiki>\n")
	default:
		return false
	}
	return true
}

func TestParser_MemoryStaysBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("generates a large corpus")
	}

	const bodySize = 64 << 10
	body := strings.Repeat("lorem ipsum ", bodySize/len("lorem ipsum "))

	peakHeap := func(pages int) uint64 {
		var peak uint64
		sample := func() {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			peak = max(peak, m.HeapAlloc)
		}

		runtime.GC()
		p := wikixml.NewParser(nil)
		g, err := p.ParseReader(context.Background(), &syntheticCorpus{pages: pages, body: body}, ports.ParseOptions{
			Interval: 50,
			Progress: func(int) { sample() },
		})
		sample()
		require.NoError(t, err)
		assert.Equal(t, 50, g.Stats().Nodes)
		return peak
	}

	small := peakHeap(200)  // about 13 MiB of XML
	large := peakHeap(2000) // about 130 MiB of XML

	t.Logf("peak heap: %d MiB for 200 pages, %d MiB for 2000 pages", small>>20, large>>20)
	assert.Less(t, large, uint64(64<<20), "heap must not grow with the corpus")
	assert.Less(t, large, 2*small+(16<<20), "heap must not scale with page count")
}

func TestParser_Malformed(t *testing.T) {
	truncated := namespacedDump[:strings.Index(namespacedDump, "<title>Beta")]

	p := wikixml.NewParser(nil)
	g, err := p.ParseReader(context.Background(), strings.NewReader(truncated), ports.ParseOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorpusMalformed)
	assert.Nil(t, g)
}

func TestParser_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := wikixml.NewParser(nil)
	_, err := p.ParseReader(ctx, strings.NewReader(plainDump), ports.ParseOptions{})

	assert.ErrorIs(t, err, domain.ErrParseCanceled)
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(plain, []byte(namespacedDump), 0o600))

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(namespacedDump))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	compressed := filepath.Join(dir, "dump.xml.xz")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0o600))

	p := wikixml.NewParser(nil)
	for _, path := range []string{plain, compressed} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			g, err := p.Parse(context.Background(), path, ports.ParseOptions{})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"beta", "gamma"}, g.Neighbors("alpha"))
		})
	}
}

func TestParser_MissingFile(t *testing.T) {
	p := wikixml.NewParser(nil)
	_, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.xml"), ports.ParseOptions{})

	assert.ErrorIs(t, err, domain.ErrCorpusOpenFailed)
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{"plain", "[[A]]", []string{"A"}},
		{"labeled", "[[A|x]] [[B]]", []string{"A", "B"}},
		{"duplicates kept", "[[A]] [[A]]", []string{"A", "A"}},
		{"mixed case kept", "[[Paris]] and [[paris]]", []string{"Paris", "paris"}},
		{"none", "no links here", nil},
		{"unterminated", "[[broken", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wikixml.ExtractLinks(tt.body))
		})
	}
}
