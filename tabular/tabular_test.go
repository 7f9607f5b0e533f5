package tabular

import (
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string  `csv:"Name"`
	Value float64 `csv:"Value"`
}

const table = "Name\tValue\nx\t1\n"

// table compressed with xz (CRC32 check) and bzip2.
var (
	xzTable = []byte{
		0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00, 0x00, 0x01, 0x69, 0x22, 0xde, 0x36, 0x02, 0x00, 0x21, 0x01,
		0x16, 0x00, 0x00, 0x00, 0x74, 0x2f, 0xe5, 0xa3, 0x01, 0x00, 0x0e, 0x4e, 0x61, 0x6d, 0x65, 0x09,
		0x56, 0x61, 0x6c, 0x75, 0x65, 0x0a, 0x78, 0x09, 0x31, 0x0a, 0x00, 0x00, 0x85, 0x63, 0xb7, 0x30,
		0x00, 0x01, 0x23, 0x0f, 0xdb, 0xdf, 0x90, 0x0e, 0x90, 0x42, 0x99, 0x0d, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x01, 0x59, 0x5a,
	}
	bzip2Table = []byte{
		0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xa5, 0xe0, 0x0f, 0x51, 0x00, 0x00,
		0x02, 0xcf, 0x80, 0x00, 0x30, 0x20, 0x00, 0x00, 0x01, 0x01, 0x00, 0x22, 0x06, 0x02, 0x40, 0x20,
		0x00, 0x22, 0x03, 0x46, 0x8d, 0x08, 0x06, 0x9a, 0x68, 0x44, 0x45, 0x08, 0xcc, 0xe5, 0xcc, 0x8f,
		0x8b, 0xb9, 0x22, 0x9c, 0x28, 0x48, 0x52, 0xf0, 0x07, 0xa8, 0x80,
	}
)

func gzipBytes(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// zipBytes stores s uncompressed as the only entry of an archive, with sizes
// in the local header.
func zipBytes(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateRaw(&zip.FileHeader{
		Name:               "table.tsv",
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE([]byte(s)),
		CompressedSize64:   uint64(len(s)),
		UncompressedSize64: uint64(len(s)),
	})
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectCompression(t *testing.T) {
	for _, c := range []struct {
		input []byte
		want  Compression
	}{
		{gzipBytes(t, table), Gzip},
		{zipBytes(t, table), Zip},
		{bzip2Table, BZip2},
		{xzTable, XZ},
		{[]byte(table), Uncompressed},
		// Shorter than every signature
		{[]byte("a\n"), Uncompressed},
		{nil, Uncompressed},
	} {
		t.Run(c.want.String(), func(t *testing.T) {
			got, err := DetectCompression(bufio.NewReader(bytes.NewReader(c.input)))
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDecompress(t *testing.T) {
	for _, c := range []struct {
		name  string
		input []byte
	}{
		{"gzip", gzipBytes(t, table)},
		{"zip", zipBytes(t, table)},
		{"bzip2", bzip2Table},
		{"xz", xzTable},
		{"uncompressed", []byte(table)},
	} {
		t.Run(c.name, func(t *testing.T) {
			r, err := Decompress(bytes.NewReader(c.input))
			require.NoError(t, err)
			b, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, table, string(b))
		})
	}
}

func TestDecompressUnixCompress(t *testing.T) {
	_, err := Decompress(bytes.NewReader([]byte{0x1f, 0x9d, 0x90, 0x4e, 0x61}))
	assert.ErrorIs(t, err, ErrUnsupportedCompression)

	path := filepath.Join(t.TempDir(), "table.tsv.Z")
	require.NoError(t, os.WriteFile(path, []byte{0x1f, 0x9d, 0x90, 0x4e, 0x61}, 0o644))
	_, err = ReadFile(path)
	assert.Error(t, err)
}

func TestDetermineDelimiter(t *testing.T) {
	assert.Equal(t, '\t', DetermineDelimiter(bytes.NewReader([]byte("Name\tValue\nx\t1\n"))))
	assert.Equal(t, ',', DetermineDelimiter(bytes.NewReader([]byte("Name,Value,Other\nx,1,2\ny,3,4\nz,5,6\n"))))
}

func TestUnmarshalBytes(t *testing.T) {
	for _, table := range []string{
		"Name\tValue\nx\t1.5\ny\t-2\n",
		"Name,Value\nx,1.5\ny,-2\n",
	} {
		rows := []*row{}
		require.NoError(t, UnmarshalBytes([]byte(table), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, row{Name: "x", Value: 1.5}, *rows[0])
		assert.Equal(t, row{Name: "y", Value: -2}, *rows[1])
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	for name, contents := range map[string][]byte{
		"table.tsv.gz":  gzipBytes(t, table),
		"table.tsv.zip": zipBytes(t, table),
		"table.tsv.bz2": bzip2Table,
		"table.tsv.xz":  xzTable,
		"table.tsv":     []byte(table),
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, contents, 0o644))

		b, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, table, string(b), name)
	}

	_, err := ReadFile(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)
}
