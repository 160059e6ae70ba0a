package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pathscribe/internal/annotate"
)

// naValue marks absent optional fields in delimited output.
const naValue = "NA"

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true)
	summaryLabelStyle  = lipgloss.NewStyle().Faint(true)
)

// counts are formatted with thousands separators for readability on
// large tables.
var countPrinter = message.NewPrinter(language.English) //nolint:gochecknoglobals // Shared formatter

// writeFeatureTable writes an annotated abundance table as TSV:
// feature, description, then the sample columns in their original order.
func writeFeatureTable(w io.Writer, sampleNames []string, rows []annotate.FeatureRow) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	header := append([]string{"feature", "description"}, sampleNames...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(row.Samples)+2)
		record = append(record, row.Feature, orNA(row.Description))
		for _, v := range row.Samples {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := tsv.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Feature, err)
		}
	}

	tsv.Flush()
	return tsv.Error()
}

// writeDaaResults writes DAA rows as TSV with the enrichment columns.
func writeDaaResults(w io.Writer, rows []annotate.DaaResult) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	header := []string{
		"feature", "p_adjust", "description",
		"pathway_name", "pathway_description", "pathway_class", "pathway_map",
	}
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Feature,
			strconv.FormatFloat(row.PAdjust, 'g', -1, 64),
			orNA(row.Description),
			orNA(row.PathwayName),
			orNA(row.PathwayDescription),
			orNA(row.PathwayClass),
			orNA(row.PathwayMap),
		}
		if err := tsv.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Feature, err)
		}
	}

	tsv.Flush()
	return tsv.Error()
}

// printFeatureSummary prints annotation counts to stderr so the summary
// never contaminates piped table output.
func printFeatureSummary(cmd *cobra.Command, rows []annotate.FeatureRow) {
	matched := 0
	for _, row := range rows {
		if row.Description != nil {
			matched++
		}
	}
	printSummary(cmd, "Annotation summary", [][2]string{
		{"rows", countPrinter.Sprintf("%d", len(rows))},
		{"described", countPrinter.Sprintf("%d", matched)},
		{"unmatched", countPrinter.Sprintf("%d", len(rows)-matched)},
	})
}

// printDaaSummary prints enrichment counts to stderr.
func printDaaSummary(cmd *cobra.Command, inputRows int, rows []annotate.DaaResult) {
	enriched := 0
	for _, row := range rows {
		if row.PathwayName != nil || row.PathwayDescription != nil ||
			row.PathwayClass != nil || row.PathwayMap != nil {
			enriched++
		}
	}
	printSummary(cmd, "Enrichment summary", [][2]string{
		{"input rows", countPrinter.Sprintf("%d", inputRows)},
		{"output rows", countPrinter.Sprintf("%d", len(rows))},
		{"enriched", countPrinter.Sprintf("%d", enriched)},
		{"unmatched", countPrinter.Sprintf("%d", len(rows)-enriched)},
	})
}

func printSummary(cmd *cobra.Command, title string, fields [][2]string) {
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, summaryHeaderStyle.Render(title))
	for _, field := range fields {
		fmt.Fprintf(out, "  %s %s\n", summaryLabelStyle.Render(field[0]+":"), field[1])
	}
}

func orNA(s *string) string {
	if s == nil {
		return naValue
	}
	return *s
}
