package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Query the compliance profiles of a data stream's checklist",
}

var profilesListCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List profiles declared by the checklist benchmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		benchmark, _, err := loadBenchmark(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		profiles := benchmark.ListProfiles()
		return render(cmd.OutOrStdout(), profiles, func(out io.Writer) {
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles declared.")
				return
			}
			for _, p := range profiles {
				fmt.Fprintf(out, "%s  %s\n", colorInfo(p.ID), p.Title)
			}
		})
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show FILE PROFILE-ID",
	Short: "Show a profile with its inheritance chain flattened",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		benchmark, _, err := loadBenchmark(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		eff, err := benchmark.GetEffectiveProfile(args[1])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), eff, func(out io.Writer) {
			fmt.Fprintf(out, "%s %s\n", colorInfo("Profile:"), eff.ID)
			fmt.Fprintf(out, "%s %s\n", colorInfo("Title:"), eff.Title)
			if eff.Description != "" {
				fmt.Fprintf(out, "%s %s\n", colorInfo("Description:"), eff.Description)
			}
			if eff.Extends != "" {
				fmt.Fprintf(out, "%s %s\n", colorInfo("Extends:"), eff.Extends)
			}
			fmt.Fprintln(out, colorInfo("Selections:"))
			for _, s := range eff.Selections {
				fmt.Fprintf(out, "  %s  %s\n", formatSelected(s.Selected), s.RuleID)
			}
		})
	},
}

// render writes v in the configured output format; the text formatter is
// used when no machine-readable format is requested.
func render(out io.Writer, v interface{}, text func(io.Writer)) error {
	switch cliConfig.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "text", "":
		text(out)
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text, json or yaml)", cliConfig.Format)
}

func init() {
	profilesCmd.PersistentFlags().StringVar(&cliConfig.Format, "format", cliConfig.Format, "output format (text|json|yaml)")
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
}
