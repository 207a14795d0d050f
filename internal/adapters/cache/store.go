// Package cache persists finished link graphs as versioned binary artifacts.
package cache

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphCache = (*Store)(nil)

// Store implements ports.GraphCache using one artifact file per corpus.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// ArtifactPath returns the artifact location for corpusPath.
// Without a cache directory the artifact sits next to the corpus; otherwise it
// is named after the blake3 digest of the absolute corpus path.
func (s *Store) ArtifactPath(corpusPath, cacheDir string) string {
	if cacheDir == "" {
		return corpusPath + domain.ArtifactSuffix
	}
	abs, err := filepath.Abs(corpusPath)
	if err != nil {
		abs = filepath.Clean(corpusPath)
	}
	sum := blake3.Sum256([]byte(abs))
	return filepath.Join(cacheDir, hex.EncodeToString(sum[:])+domain.ArtifactSuffix)
}

// Exists reports whether a regular file is present at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Save writes graph to path. The artifact is written to a temporary file in
// the same directory and renamed into place, so readers never observe a
// partial artifact.
func (s *Store) Save(graph *domain.LinkGraph, path string, compression domain.Compression) (err error) {
	var flags byte
	switch compression {
	case domain.CompressionNone, "":
	case domain.CompressionXZ:
		flags |= flagXZ
	default:
		return errors.Join(domain.ErrCacheWriteFailed,
			zerr.With(zerr.New("unknown compression"), "compression", string(compression)))
	}

	fail := func(err error, msg string) error {
		return errors.Join(domain.ErrCacheWriteFailed, zerr.With(zerr.Wrap(err, msg), "path", path))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return fail(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fail(err, "failed to create temporary artifact")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := writeHeader(bw, flags); err != nil {
		return fail(err, "failed to write artifact header")
	}

	var sink io.Writer = bw
	var xw *xz.Writer
	if flags&flagXZ != 0 {
		xw, err = xz.NewWriter(bw)
		if err != nil {
			return fail(err, "failed to start xz stream")
		}
		sink = xw
	}

	if err := encodeGraph(newEncoder(sink), graph); err != nil {
		return fail(err, "failed to encode graph")
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			return fail(err, "failed to finish xz stream")
		}
	}
	if err := bw.Flush(); err != nil {
		return fail(err, "failed to flush artifact")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "failed to sync artifact")
	}
	if err := tmp.Close(); err != nil {
		return fail(err, "failed to close artifact")
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return fail(err, "failed to set artifact permissions")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err, "failed to move artifact into place")
	}

	return nil
}

func writeHeader(w io.Writer, flags byte) error {
	var buf [len(magic) + binary.MaxVarintLen64 + 1]byte
	n := copy(buf[:], magic[:])
	n += binary.PutUvarint(buf[n:], formatVersion)
	buf[n] = flags
	_, err := w.Write(buf[:n+1])
	return err
}

// Load reads the artifact at path.
func (s *Store) Load(path string) (*domain.LinkGraph, error) {
	//nolint:gosec // Path is derived from the corpus path provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(domain.ErrCacheReadFailed, zerr.With(err, "path", path))
	}
	defer f.Close() //nolint:errcheck // Read-only file

	br := bufio.NewReader(f)

	var tag [len(magic)]byte
	if _, err := io.ReadFull(br, tag[:]); err != nil || tag != magic {
		return nil, errors.Join(domain.ErrCacheNotArtifact, zerr.With(zerr.New("missing artifact tag"), "path", path))
	}

	version, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, corrupt(err, "failed to read version", path)
	}
	if version != formatVersion {
		return nil, errors.Join(domain.ErrCacheVersionUnsupported,
			zerr.With(zerr.New(fmt.Sprintf("artifact version %d", version)), "path", path))
	}

	flags, err := br.ReadByte()
	if err != nil {
		return nil, corrupt(err, "failed to read flags", path)
	}
	if flags&^flagXZ != 0 {
		return nil, corrupt(zerr.New(fmt.Sprintf("unknown flags %#x", flags)), "invalid header", path)
	}

	var payload io.Reader = br
	if flags&flagXZ != 0 {
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, corrupt(err, "failed to open xz stream", path)
		}
		payload = xr
	}

	g, err := decodeGraph(newDecoder(payload))
	if err != nil {
		return nil, corrupt(err, "failed to decode graph", path)
	}
	return g, nil
}

func corrupt(err error, msg, path string) error {
	return errors.Join(domain.ErrCacheCorrupt, zerr.With(zerr.Wrap(err, msg), "path", path))
}
