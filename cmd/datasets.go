package cmd

import (
	"github.com/helioget/helioget/datasets"
	"github.com/helioget/helioget/internal/contract"
	"github.com/helioget/helioget/internal/outwriter"
	"github.com/spf13/cobra"
)

// datasetsCmd lists every registered data product.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the data products helioget can load.",
	Long: `List every registered dataset with its addressing granularity and columns.

The listed keys are what the load command accepts, e.g.:
  helioget load omni/hourly --start 2020-01-01 --end 2020-01-03`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		entries := make([]outwriter.DatasetEntry, 0, len(datasets.Keys()))
		for _, key := range datasets.Keys() {
			p, _ := datasets.Lookup(key)
			entries = append(entries, outwriter.DatasetEntry{
				Key:         key,
				Granularity: string(p.Descriptor.Granularity),
				Source:      p.Descriptor.RemoteBaseURL,
				Doc:         p.Doc,
			})
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteDatasets(entries, cfg); err != nil {
			contract.LogFatal("Cannot list datasets", err)
		}
	},
}
