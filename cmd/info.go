package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/sds-cli/internal/xccdf"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize a SCAP source data stream file",
	Long: `Parse a SCAP 1.2 source data stream and print its structure:
  - Collection identity and declared data streams
  - Components with their integrity state
  - The checklist benchmark and its profiles`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		col, err := loadCollection(path)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Document type: SCAP Source Data Stream")
		fmt.Fprintf(out, "Collection:    %s (schematron %s)\n", col.ID(), col.SchematronVersion())
		for _, ds := range col.Streams() {
			fmt.Fprintf(out, "Stream:        %s [%s, SCAP %s]\n", ds.ID(), ds.UseCase(), ds.ScapVersion())
		}
		if n := len(col.Signatures()); n > 0 {
			fmt.Fprintf(out, "Signatures:    %d (not checked here, see 'sds-cli verify')\n", n)
		}
		fmt.Fprintln(out)

		bundle, err := newResolver().Resolve(cmd.Context(), col, cliConfig.Stream)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Resolved stream %s:\n", bundle.Stream().ID())
		for _, comp := range bundle.Components() {
			fmt.Fprintf(out, "  %s  %s (%s)\n", formatVerified(comp.Verified()), comp.ID(), comp.Kind())
		}
		for _, p := range bundle.Problems() {
			fmt.Fprintf(out, "  %s  %s: %v\n", colorError("failed"), p.ComponentID, p.Err)
		}
		fmt.Fprintln(out)

		chk := bundle.Checklist()
		if chk == nil {
			fmt.Fprintln(out, colorWarn("The stream declares no checklist component."))
			return nil
		}
		benchmark, err := xccdf.ParseBenchmark(chk)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Benchmark:     %s\n", benchmark.ID())
		if benchmark.Title() != "" {
			fmt.Fprintf(out, "Title:         %s\n", benchmark.Title())
		}
		fmt.Fprintf(out, "Version:       %s (%s)\n", benchmark.Version(), benchmark.Status())
		fmt.Fprintf(out, "Rules:         %d\n", len(benchmark.Rules()))

		profiles := benchmark.ListProfiles()
		if len(profiles) == 0 {
			fmt.Fprintln(out, "Profiles:      none")
			return nil
		}
		fmt.Fprintln(out, "Profiles:")
		for _, p := range profiles {
			fmt.Fprintf(out, "  %s  %s\n", colorInfo(p.ID), p.Title)
		}
		return nil
	},
}
