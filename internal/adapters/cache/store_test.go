package cache_test

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wikipath/internal/adapters/cache"
	"go.trai.ch/wikipath/internal/core/domain"
)

func sampleGraph() *domain.LinkGraph {
	g := domain.NewLinkGraph()
	g.Add("Paris", []string{"France", "Seine", "Capital city"})
	g.Add("France", []string{"Paris", "Europe"})
	g.Add("Europe", nil)
	g.AddAlias("Capital city", "Capital")
	g.AddAlias("Lutetia", "Paris")
	g.RewriteAliases()
	g.Compact()
	return g
}

func assertSameGraph(t *testing.T, want, got *domain.LinkGraph) {
	t.Helper()
	assert.Equal(t, want.Stats(), got.Stats())
	assert.Equal(t, want.Symbols().Titles(), got.Symbols().Titles())
	for v := range want.Digraph().Vertices() {
		title := want.Symbols().Title(v)
		assert.Equal(t, want.Neighbors(title), got.Neighbors(title), "neighbors of %q", title)
	}
	for alias := range want.Aliases().All() {
		title := want.Symbols().Title(alias)
		assert.Equal(t, want.Resolve(title), got.Resolve(title))
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for _, compression := range []domain.Compression{domain.CompressionNone, domain.CompressionXZ} {
		t.Run(string(compression), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dump.xml.cache")
			store := cache.NewStore()
			want := sampleGraph()

			require.NoError(t, store.Save(want, path, compression))
			assert.True(t, store.Exists(path))

			got, err := store.Load(path)
			require.NoError(t, err)
			assertSameGraph(t, want, got)
		})
	}
}

func TestStore_RoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.cache")
	store := cache.NewStore()

	require.NoError(t, store.Save(domain.NewLinkGraph(), path, domain.CompressionNone))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.GraphStats{}, got.Stats())
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dump.cache")
	store := cache.NewStore()

	require.NoError(t, store.Save(sampleGraph(), path, domain.CompressionNone))

	small := domain.NewLinkGraph()
	small.Add("only", nil)
	require.NoError(t, store.Save(small, path, domain.CompressionXZ))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats().Nodes)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_SaveUnknownCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.cache")

	err := cache.NewStore().Save(sampleGraph(), path, domain.Compression("zip"))

	require.ErrorIs(t, err, domain.ErrCacheWriteFailed)
	assert.NoFileExists(t, path)
}

func TestStore_LoadErrors(t *testing.T) {
	store := cache.NewStore()
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.cache")
	require.NoError(t, store.Save(sampleGraph(), valid, domain.CompressionNone))
	data, err := os.ReadFile(valid) //nolint:gosec // Test file with controlled path
	require.NoError(t, err)

	flipped := append([]byte(nil), data...)
	flipped[len(flipped)-9] ^= 0xff

	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{"empty file", nil, domain.ErrCacheNotArtifact},
		{"wrong magic", []byte("<mediawiki>"), domain.ErrCacheNotArtifact},
		{"unknown version", []byte("WPGC\x07\x00"), domain.ErrCacheVersionUnsupported},
		{"unknown flags", []byte("WPGC\x01\x80"), domain.ErrCacheCorrupt},
		{"truncated payload", data[:len(data)/2], domain.ErrCacheCorrupt},
		{"checksum mismatch", flipped, domain.ErrCacheCorrupt},
		{"trailing data", append(append([]byte(nil), data...), 0), domain.ErrCacheCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".cache")
			require.NoError(t, os.WriteFile(path, tt.content, 0o600))

			g, err := store.Load(path)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestStore_LoadHugeLengthPrefix(t *testing.T) {
	header := []byte("WPGC\x01\x00")
	tests := []struct {
		name    string
		payload []byte
	}{
		// One title "a", one node with id 0 whose bitmap claims 2 GiB.
		{"bitmap", []byte{0x01, 0x01, 'a', 0x01, 0x00, 0x80, 0x80, 0x80, 0x80, 0x08}},
		// One title claiming 1 MiB with no bytes behind it.
		{"title", []byte{0x01, 0x80, 0x80, 0x40}},
	}

	store := cache.NewStore()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "short.cache")
			require.NoError(t, os.WriteFile(path, append(append([]byte(nil), header...), tt.payload...), 0o600))

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			g, err := store.Load(path)
			runtime.ReadMemStats(&after)

			require.ErrorIs(t, err, domain.ErrCacheCorrupt)
			assert.Nil(t, g)
			assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(32<<20),
				"allocation must follow the bytes present, not the length prefix")
		})
	}
}

// randomGraph builds a graph from a seeded sequence of page and redirect
// declarations over a small title pool, so titles collide across calls.
func randomGraph(rng *rand.Rand) *domain.LinkGraph {
	title := func() string {
		return fmt.Sprintf("Page %d", rng.IntN(60))
	}

	g := domain.NewLinkGraph()
	for range rng.IntN(80) {
		if rng.IntN(5) == 0 {
			g.AddAlias(title(), title())
			continue
		}
		links := make([]string, rng.IntN(12))
		for i := range links {
			links[i] = title()
		}
		g.Add(title(), links)
	}
	if rng.IntN(2) == 0 {
		g.RewriteAliases()
	}
	g.Compact()
	return g
}

func TestStore_RandomRoundTrip(t *testing.T) {
	store := cache.NewStore()
	dir := t.TempDir()

	for seed := range uint64(25) {
		for _, compression := range []domain.Compression{domain.CompressionNone, domain.CompressionXZ} {
			t.Run(fmt.Sprintf("seed=%d/%s", seed, compression), func(t *testing.T) {
				want := randomGraph(rand.New(rand.NewPCG(seed, 0x5eed)))
				path := filepath.Join(dir, fmt.Sprintf("%d-%s.cache", seed, compression))

				require.NoError(t, store.Save(want, path, compression))
				got, err := store.Load(path)
				require.NoError(t, err)
				assertSameGraph(t, want, got)
			})
		}
	}
}

func TestStore_RandomByteFlipIsCorrupt(t *testing.T) {
	store := cache.NewStore()
	dir := t.TempDir()
	const headerLen = 6

	for seed := range uint64(25) {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 0xf11b))
			path := filepath.Join(dir, fmt.Sprintf("%d.cache", seed))
			require.NoError(t, store.Save(randomGraph(rng), path, domain.CompressionNone))

			data, err := os.ReadFile(path) //nolint:gosec // Test file with controlled path
			require.NoError(t, err)
			pos := headerLen + rng.IntN(len(data)-headerLen)
			data[pos] ^= byte(1 + rng.IntN(255))
			require.NoError(t, os.WriteFile(path, data, 0o600))

			g, err := store.Load(path)
			require.ErrorIs(t, err, domain.ErrCacheCorrupt, "flipped byte %d of %d", pos, len(data))
			assert.Nil(t, g)
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := cache.NewStore()
	path := filepath.Join(t.TempDir(), "missing.cache")

	assert.False(t, store.Exists(path))
	_, err := store.Load(path)
	assert.ErrorIs(t, err, domain.ErrCacheReadFailed)
}

func TestStore_ArtifactPath(t *testing.T) {
	store := cache.NewStore()

	assert.Equal(t, "dumps/enwiki.xml.cache", store.ArtifactPath("dumps/enwiki.xml", ""))

	dir := t.TempDir()
	first := store.ArtifactPath("dumps/enwiki.xml", dir)
	assert.Equal(t, dir, filepath.Dir(first))
	assert.True(t, strings.HasSuffix(first, domain.ArtifactSuffix))
	assert.Len(t, strings.TrimSuffix(filepath.Base(first), domain.ArtifactSuffix), 64)

	assert.Equal(t, first, store.ArtifactPath("dumps/enwiki.xml", dir), "naming is deterministic")
	assert.NotEqual(t, first, store.ArtifactPath("dumps/frwiki.xml", dir))

	abs, err := filepath.Abs("dumps/enwiki.xml")
	require.NoError(t, err)
	assert.Equal(t, first, store.ArtifactPath(abs, dir), "relative and absolute corpus paths share an artifact")
}
