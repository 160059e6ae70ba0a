// Package reference provides the local id→description mappings used to
// annotate feature tables without network access. A compact mapping for
// each supported pathway kind ships embedded in the binary; larger or
// custom mappings can be loaded from a TSV file.
package reference

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rshade/pathscribe/internal/annotate"
)

//go:embed data/ko.tsv data/ec.tsv data/metacyc.tsv
var embedded embed.FS

// Entry is one reference record: a feature id and its human-readable
// description. Ids are not unique in every id space (EC tables map one
// number to several names), so entries keep their file order.
type Entry struct {
	ID          string
	Description string
}

// Reference is an in-memory reference mapping for one pathway kind.
type Reference struct {
	Kind    annotate.PathwayKind
	Entries []Entry

	// byID maps each id to its first entry index, preserving the
	// first-match-wins rule without rescanning.
	byID map[string]int
}

// Load returns the embedded reference mapping for kind. Unsupported
// kinds fail with annotate.ErrUnsupportedPathway.
func Load(kind annotate.PathwayKind) (*Reference, error) {
	switch kind {
	case annotate.KindKO, annotate.KindEC, annotate.KindMetaCyc:
	default:
		return nil, fmt.Errorf("%w: %q", annotate.ErrUnsupportedPathway, kind)
	}

	f, err := embedded.Open("data/" + string(kind) + ".tsv")
	if err != nil {
		return nil, fmt.Errorf("opening embedded %s reference: %w", kind, err)
	}
	defer func() { _ = f.Close() }()

	return parse(kind, f)
}

// LoadFile loads a reference mapping for kind from a two-column TSV file
// (id, description). Lines starting with '#' are ignored.
func LoadFile(kind annotate.PathwayKind, path string) (*Reference, error) {
	if _, err := annotate.ParsePathwayKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %q", annotate.ErrUnsupportedPathway, kind)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parse(kind, f)
}

// Describe returns the description of the first entry whose id equals
// id, scanning in the reference's natural order.
func (r *Reference) Describe(id string) (string, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return r.Entries[idx].Description, true
}

// Len returns the number of reference entries.
func (r *Reference) Len() int {
	return len(r.Entries)
}

func parse(kind annotate.PathwayKind, r io.Reader) (*Reference, error) {
	ref := &Reference{
		Kind: kind,
		byID: make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, desc, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s reference line %d: expected two tab-separated columns", kind, lineNum)
		}

		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%s reference line %d: empty id", kind, lineNum)
		}

		ref.Entries = append(ref.Entries, Entry{ID: id, Description: strings.TrimSpace(desc)})
		if _, seen := ref.byID[id]; !seen {
			ref.byID[id] = len(ref.Entries) - 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s reference: %w", kind, err)
	}

	return ref, nil
}
