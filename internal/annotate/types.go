// Package annotate implements pathway annotation: joining feature tables
// against local reference mappings and enriching differential-abundance
// results with pathway metadata fetched from KEGG in batches.
package annotate

import "errors"

// PathwayKind identifies the feature id space of a table.
type PathwayKind string

// Supported pathway kinds.
const (
	KindKO      PathwayKind = "ko"
	KindEC      PathwayKind = "ec"
	KindMetaCyc PathwayKind = "metacyc"
)

// ParsePathwayKind validates a user-supplied pathway kind string.
func ParsePathwayKind(s string) (PathwayKind, error) {
	switch PathwayKind(s) {
	case KindKO, KindEC, KindMetaCyc:
		return PathwayKind(s), nil
	default:
		return "", ErrUnsupportedPathway
	}
}

// Annotation errors.
var (
	// ErrInvalidInput is returned when neither a feature table nor a DAA
	// results table was supplied.
	ErrInvalidInput = errors.New("no input: supply a feature abundance table or a DAA results table")

	// ErrUnsupportedPathway is returned for pathway kinds outside
	// {ko, ec, metacyc}.
	ErrUnsupportedPathway = errors.New("unsupported pathway kind: must be one of ko, ec, metacyc")

	// ErrNoSignificantFeatures is returned when the significance filter
	// retains zero rows. This is terminal: enrichment of an empty set is
	// never attempted.
	ErrNoSignificantFeatures = errors.New(
		"no rows pass the significance threshold; " +
			"consider relaxing the p_adjust cutoff or revisiting the group design")

	// ErrRemoteUnavailable is returned when a chunk query exhausts its
	// retry budget. No partial output is produced.
	ErrRemoteUnavailable = errors.New("remote pathway service unavailable: retry budget exhausted")
)

// FeatureRow is one row of a feature abundance table. Samples holds the
// numeric abundance columns in their original order; Description is nil
// until the row is annotated against a reference, and stays nil when the
// feature id has no reference entry.
type FeatureRow struct {
	Feature     string
	Description *string
	Samples     []float64
}

// DaaResult is one row of a differential-abundance-analysis results
// table. The four pathway fields exist only after KEGG enrichment; they
// are nil for rows whose feature id the remote service did not return.
//
// SourceIndex is the row's position in the original table. It survives
// filtering and chunking so enrichment results merge back into absolute
// row positions, never chunk-local ones.
type DaaResult struct {
	Feature     string
	PAdjust     float64
	SourceIndex int

	Description        *string
	PathwayName        *string
	PathwayDescription *string
	PathwayClass       *string
	PathwayMap         *string
}
