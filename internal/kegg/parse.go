package kegg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Flat-file layout constants. Field keys occupy a fixed-width column;
// continuation lines are indented past it and belong to the preceding
// key. Entries are separated by a "///" line.
const (
	fieldKeyWidth   = 12
	entryTerminator = "///"
)

// ParseFlatFile parses a KEGG flat-file response into entries. Unknown
// field keys are skipped, absent fields stay nil, and multi-line values
// become one element per line. An entry without an ENTRY line is a
// malformed response and fails the parse.
func ParseFlatFile(r io.Reader) ([]Entry, error) {
	var (
		entries  []Entry
		current  Entry
		began    bool
		lastKey  string
		appendTo = func(key, value string) {
			value = strings.TrimSpace(value)
			if value == "" {
				return
			}
			switch key {
			case fieldEntry:
				if current.ID == "" {
					current.ID = strings.Fields(value)[0]
				}
			case fieldName:
				current.Name = append(current.Name, value)
			case fieldDescription:
				current.Description = append(current.Description, value)
			case fieldClass:
				current.Class = append(current.Class, value)
			case fieldPathwayMap:
				current.PathwayMap = append(current.PathwayMap, value)
			}
		}
	)

	flush := func() error {
		if !began {
			return nil
		}
		if current.ID == "" {
			return fmt.Errorf("malformed flat-file entry: missing ENTRY line")
		}
		entries = append(entries, current)
		current = Entry{}
		began = false
		lastKey = ""
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, entryTerminator) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		key, value := splitFieldLine(line)
		switch {
		case key != "":
			began = true
			lastKey = key
			appendTo(key, value)
		case lastKey != "":
			// Continuation line for the previous key.
			appendTo(lastKey, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading flat-file response: %w", err)
	}

	// A final entry without a trailing /// still counts.
	if err := flush(); err != nil {
		return nil, err
	}

	return entries, nil
}

// splitFieldLine splits a flat-file line into its field key and value.
// Continuation lines (leading whitespace) return an empty key.
func splitFieldLine(line string) (key, value string) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", line
	}
	if len(line) <= fieldKeyWidth {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:fieldKeyWidth]), line[fieldKeyWidth:]
}
