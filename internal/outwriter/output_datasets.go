package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/schema"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// DatasetEntry is one row of the dataset listing.
type DatasetEntry struct {
	Key         string `json:"key"`
	Granularity string `json:"granularity"`
	Source      string `json:"source"`
	Doc         string `json:"doc"`
}

// WriteDatasetList outputs the registered dataset listing, dispatching based on the output format configured.
func WriteDatasetList(entries []DatasetEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"key", "granularity", "source", "doc"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, e := range entries {
					rec := []string{e.Key, e.Granularity, e.Source, e.Doc}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetTable(entries, cfg, w)
		}, "Wrote table")
	}
}

// writeDatasetTable generates and writes the human-readable dataset listing.
func writeDatasetTable(entries []DatasetEntry, cfg *contract.Config, writer io.Writer) error {
	keyFmt := fmt.Sprint
	if cfg.UseColors {
		keyFmt = color.New(color.FgCyan, color.Bold).Sprint
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dataset", "Granularity", "Source", "Description"})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			keyFmt(e.Key),
			e.Granularity,
			e.Source,
			e.Doc,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "%d datasets registered\n", len(entries))
	return err
}
