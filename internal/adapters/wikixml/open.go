package wikixml

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/zerr"
)

const readBufferSize = 1 << 20

// corpusReader is a possibly decompressing reader over a corpus file.
type corpusReader struct {
	io.Reader
	file *os.File
}

func (r *corpusReader) Close() error {
	return r.file.Close()
}

// openCorpus opens the corpus at path, decompressing .xz and .bz2 dumps on the fly.
func openCorpus(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, errors.Join(domain.ErrCorpusOpenFailed, zerr.With(err, "path", path))
	}

	buffered := bufio.NewReaderSize(f, readBufferSize)

	var r io.Reader
	switch {
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(buffered)
		if err != nil {
			_ = f.Close()
			return nil, errors.Join(domain.ErrCorpusDecompressFailed, zerr.With(err, "path", path))
		}
		r = xr
	case strings.HasSuffix(path, ".bz2"):
		r = bufio.NewReaderSize(bzip2.NewReader(buffered), readBufferSize)
	default:
		r = buffered
	}

	return &corpusReader{Reader: r, file: f}, nil
}
