package main

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/docfmt/internal/analyze"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(rf *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <file.docx>",
		Short: "Report heading, image and code block statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rf.logger(cmd.ErrOrStderr())
			rules, err := rf.loadRules()
			if err != nil {
				return err
			}
			// Analysis runs before any rewrite, so the options do not matter.
			res, err := process(cmd.Context(), args[0], rules, rewrite.Options{}, log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Analysis)
			}
			fmt.Fprint(out, analyze.Report(res.Analysis))
			fmt.Fprintf(out, "\nHeader ratio (H3+H4 per H2): %.1f\n", res.Analysis.HeaderRatio())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	return cmd
}
