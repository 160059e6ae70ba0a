// Package kegg provides a minimal client for the KEGG REST API, covering
// the batched entry retrieval pathscribe needs for KO enrichment.
package kegg

// Field names recognized in KEGG flat-file entries.
const (
	fieldEntry       = "ENTRY"
	fieldName        = "NAME"
	fieldDescription = "DESCRIPTION"
	fieldClass       = "CLASS"
	fieldPathwayMap  = "PATHWAY_MAP"
)

// Entry is one record returned by a batched KEGG get. Fields are
// optional and multi-valued: a nil or empty slice means the service did
// not report that field for the entry. The service may also omit whole
// entries for unknown ids, so a response can cover a strict subset of
// the requested ids.
type Entry struct {
	// ID is the entry identifier (first token of the ENTRY line),
	// e.g. "K00001" or "map00010".
	ID string

	Name        []string
	Description []string
	Class       []string
	PathwayMap  []string
}
