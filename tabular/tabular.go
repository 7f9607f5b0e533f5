// Package tabular reads the delimited count and value tables consumed by the
// command line tools. Inputs may be compressed, and the delimiter is detected
// from the header.
package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
	"github.com/gocarina/gocsv"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		path = filepath.Join(usr.HomeDir, (path)[2:])
	}

	return path
}

// ReadFile returns the decompressed contents of the file at path.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := Decompress(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return b, nil
}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Tab wins whenever the header
// contains one, and any other candidate must appear in the header.
func DetermineDelimiter(r io.Reader) rune {
	b, err := io.ReadAll(r)
	if err != nil {
		return ','
	}

	firstLine := b
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		firstLine = b[:i]
	}
	if bytes.IndexByte(firstLine, '\t') >= 0 {
		return '\t'
	}

	d := detector.New()
	for _, delim := range d.DetectDelimiter(bytes.NewReader(b), '"') {
		if len(delim) == 0 || delim[0] == '\n' || delim[0] == '\r' {
			continue
		}
		if bytes.IndexByte(firstLine, delim[0]) >= 0 {
			return rune(delim[0])
		}
	}

	return ','
}

// UnmarshalBytes decodes a delimited table with a header row into out, a
// pointer to a slice of structs tagged for gocsv.
func UnmarshalBytes(fileBytes []byte, out interface{}) error {
	r := csv.NewReader(bytes.NewReader(fileBytes))
	r.Comma = DetermineDelimiter(bytes.NewReader(fileBytes))
	r.LazyQuotes = true

	if err := gocsv.UnmarshalCSV(r, out); err != nil {
		return pfx.Err(err)
	}

	return nil
}
