package ingest

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// sniffDelimiter picks the field delimiter for a table file. The file
// extension decides when it is unambiguous (.tsv/.tab/.csv); otherwise
// the header line is inspected and the more frequent of tab and comma
// wins, defaulting to tab since PICRUSt2 exports are tab-separated.
func sniffDelimiter(r io.Reader, path string) (rune, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t', nil
	case ".csv":
		return ',', nil
	}

	header, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading table header: %w", err)
	}
	if strings.TrimSpace(header) == "" {
		return 0, ErrEmptyTable
	}

	if strings.Count(header, ",") > strings.Count(header, "\t") {
		return ',', nil
	}
	return '\t', nil
}
