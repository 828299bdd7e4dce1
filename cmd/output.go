package cmd

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/zhubert/chatpane/internal/export"
)

const (
	outputTable = "table"

	// maxCellWidth caps free-text table columns
	maxCellWidth = 60
)

// writeOutput prints v as json or yaml, or calls table for the table format
func writeOutput(w io.Writer, output string, v any, table func(t *tablewriter.Table)) error {
	if strings.EqualFold(strings.TrimSpace(output), outputTable) {
		t := tablewriter.NewWriter(w)
		t.SetBorder(false)
		t.SetAutoWrapText(false)
		t.SetHeaderLine(true)
		table(t)
		t.Render()
		return nil
	}
	format, err := export.ParseFormat(output)
	if err != nil {
		return err
	}
	return export.Encode(w, v, format)
}

// cell flattens newlines and truncates to maxCellWidth display columns
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, maxCellWidth, "…")
}
