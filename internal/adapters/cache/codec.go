package cache

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// formatVersion is the artifact layout written by this package.
	formatVersion = 1

	flagXZ byte = 1 << 0

	checksumSize = 8

	maxTitleLen  = 1 << 20
	maxBitmapLen = 1 << 31
	maxPrealloc  = 1 << 16
)

var magic = [4]byte{'W', 'P', 'G', 'C'}

// encoder writes the artifact payload and keeps a running checksum of it.
type encoder struct {
	w       io.Writer
	digest  *xxhash.Digest
	payload io.Writer
	scratch [binary.MaxVarintLen64]byte
}

func newEncoder(w io.Writer) *encoder {
	d := xxhash.New()
	return &encoder{
		w:       w,
		digest:  d,
		payload: io.MultiWriter(w, d),
	}
}

func (e *encoder) uvarint(v uint64) error {
	n := binary.PutUvarint(e.scratch[:], v)
	_, err := e.payload.Write(e.scratch[:n])
	return err
}

func (e *encoder) bytes(b []byte) error {
	if err := e.uvarint(uint64(len(b))); err != nil {
		return err
	}
	_, err := e.payload.Write(b)
	return err
}

func (e *encoder) bitmap(bm *roaring.Bitmap) error {
	if err := e.uvarint(bm.GetSerializedSizeInBytes()); err != nil {
		return err
	}
	_, err := bm.WriteTo(e.payload)
	return err
}

// checksum writes the digest of everything written so far. It is not itself
// part of the digest.
func (e *encoder) checksum() error {
	var sum [checksumSize]byte
	binary.LittleEndian.PutUint64(sum[:], e.digest.Sum64())
	_, err := e.w.Write(sum[:])
	return err
}

func encodeGraph(e *encoder, g *domain.LinkGraph) error {
	titles := g.Symbols().Titles()
	if err := e.uvarint(uint64(len(titles))); err != nil {
		return err
	}
	for _, t := range titles {
		if err := e.bytes([]byte(t)); err != nil {
			return err
		}
	}

	graph := g.Digraph()
	if err := e.uvarint(uint64(graph.Len())); err != nil {
		return err
	}
	for v := range graph.Vertices() {
		if err := e.uvarint(uint64(v)); err != nil {
			return err
		}
		if err := e.bitmap(graph.Successors(v)); err != nil {
			return err
		}
	}

	aliases := g.Aliases()
	if err := e.uvarint(uint64(aliases.Len())); err != nil {
		return err
	}
	for alias, canonical := range aliases.All() {
		if err := e.uvarint(uint64(alias)); err != nil {
			return err
		}
		if err := e.uvarint(uint64(canonical)); err != nil {
			return err
		}
	}

	return e.checksum()
}

// hashingReader feeds every payload byte it returns into a digest.
type hashingReader struct {
	r      *bufio.Reader
	digest *xxhash.Digest
	one    [1]byte
}

func (h *hashingReader) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	_, _ = h.digest.Write(p[:n])
	return n, err
}

func (h *hashingReader) ReadByte() (byte, error) {
	b, err := h.r.ReadByte()
	if err != nil {
		return 0, err
	}
	h.one[0] = b
	_, _ = h.digest.Write(h.one[:])
	return b, nil
}

// decoder reads the artifact payload written by encoder.
// Length prefixes are never trusted for allocation: buffers grow only as
// payload bytes actually arrive.
type decoder struct {
	src *bufio.Reader
	in  *hashingReader
	buf bytes.Buffer
}

func newDecoder(r io.Reader) *decoder {
	src := bufio.NewReader(r)
	return &decoder{
		src: src,
		in:  &hashingReader{r: src, digest: xxhash.New()},
	}
}

func (d *decoder) uvarint() (uint64, error) {
	return binary.ReadUvarint(d.in)
}

func (d *decoder) id(limit int) (uint32, error) {
	v, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if v >= uint64(limit) {
		return 0, zerr.With(zerr.New("identifier out of range"), "id", v)
	}
	return uint32(v), nil
}

func (d *decoder) length(limit uint64) (int64, error) {
	n, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, zerr.With(zerr.New("length out of range"), "length", n)
	}
	return int64(n), nil //nolint:gosec // Bounded by limit
}

// bytes reads a length-prefixed byte string. The returned slice is only
// valid until the next call.
func (d *decoder) bytes(limit uint64) ([]byte, error) {
	n, err := d.length(limit)
	if err != nil {
		return nil, err
	}
	d.buf.Reset()
	if _, err := io.CopyN(&d.buf, d.in, n); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return d.buf.Bytes(), nil
}

// bitmap reads a length-prefixed roaring bitmap straight from the stream.
func (d *decoder) bitmap() (*roaring.Bitmap, error) {
	n, err := d.length(maxBitmapLen)
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	lr := &io.LimitedReader{R: d.in, N: n}
	if _, err := bm.ReadFrom(lr); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if lr.N != 0 {
		return nil, zerr.With(zerr.New("bitmap length mismatch"), "length", n)
	}
	return bm, nil
}

func decodeGraph(d *decoder) (*domain.LinkGraph, error) {
	count, err := d.uvarint()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read title count")
	}
	symbols := domain.NewSymbolsWithCapacity(int(min(count, maxPrealloc)))
	for i := range count {
		b, err := d.bytes(maxTitleLen)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read title"), "index", i)
		}
		if uint64(symbols.Intern(string(b))) != i {
			return nil, zerr.With(zerr.New("duplicate title"), "index", i)
		}
	}
	titles := symbols.Len()

	nodes, err := d.uvarint()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read node count")
	}
	graph := domain.NewDigraph()
	for range nodes {
		v, err := d.id(titles)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read node")
		}
		bm, err := d.bitmap()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read destinations"), "node", v)
		}
		if !bm.IsEmpty() && uint64(bm.Maximum()) >= uint64(titles) {
			return nil, zerr.With(zerr.New("destination out of range"), "node", v)
		}
		graph.SetSuccessors(v, bm)
	}

	count, err = d.uvarint()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read alias count")
	}
	aliases := domain.NewAliases()
	for range count {
		alias, err := d.id(titles)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read alias")
		}
		canonical, err := d.id(titles)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read alias target")
		}
		aliases.Add(alias, canonical)
	}

	var sum [checksumSize]byte
	if _, err := io.ReadFull(d.src, sum[:]); err != nil {
		return nil, zerr.Wrap(err, "failed to read checksum")
	}
	if binary.LittleEndian.Uint64(sum[:]) != d.in.digest.Sum64() {
		return nil, zerr.New("checksum mismatch")
	}
	if _, err := d.src.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, zerr.New("trailing data after checksum")
	}

	return domain.AssembleLinkGraph(symbols, graph, aliases), nil
}
