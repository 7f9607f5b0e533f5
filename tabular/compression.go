package tabular

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrUnsupportedCompression is returned for inputs whose container is
// recognized but cannot be decoded.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// Compression identifies how a table is encoded on disk.
type Compression byte

const (
	Uncompressed Compression = iota
	Gzip
	Zip
	BZip2
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zip:
		return "zip"
	case BZip2:
		return "bzip2"
	case XZ:
		return "xz"
	}
	return "uncompressed"
}

// Leading magic bytes, from https://stackoverflow.com/a/19127748/199475
var signatures = []struct {
	compression Compression
	magic       []byte
}{
	{Gzip, []byte{0x1f, 0x8b, 0x08}},
	{Zip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{BZip2, []byte{0x42, 0x5a, 0x68}},
	{XZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

// Unix compress (.Z) output is LZW with a header that compress/lzw does not
// understand.
var unixCompressMagic = []byte{0x1f, 0x9d}

// DetectCompression inspects the head of br without consuming it.
func DetectCompression(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return Uncompressed, err
	}

	if bytes.HasPrefix(head, unixCompressMagic) {
		return Uncompressed, fmt.Errorf("%w: unix compress (.Z)", ErrUnsupportedCompression)
	}

	for _, s := range signatures {
		if bytes.HasPrefix(head, s.magic) {
			return s.compression, nil
		}
	}

	return Uncompressed, nil
}

// Decompress returns a reader over the decoded contents of r. Zip archives
// are read from their first entry.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	compression, err := DetectCompression(br)
	if err != nil {
		return nil, err
	}

	switch compression {
	case Gzip:
		return gzip.NewReader(br)
	case Zip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, fmt.Errorf("opening first zip entry: %w", err)
		}
		return zr, nil
	case BZip2:
		return bzip2.NewReader(br), nil
	case XZ:
		return xz.NewReader(br, 0)
	}

	return br, nil
}
