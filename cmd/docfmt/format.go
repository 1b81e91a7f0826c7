package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgallion1/docfmt/internal/export"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/spf13/cobra"
)

type formatFlags struct {
	outDir   string
	compare  bool
	markdown bool
	pdf      bool
	json     bool
	copy     bool
}

func newFormatCmd(rf *rootFlags) *cobra.Command {
	ff := &formatFlags{}
	cmd := &cobra.Command{
		Use:   "format <file.docx>",
		Short: "Format a document and write <name>_formatted.html",
		Long: `Format converts a Word document, applies the formatting rules and writes a
standalone HTML page into the output directory.

Examples:
  docfmt format report.docx
  docfmt format report.docx --compare --pdf --out ./out
  docfmt format report.docx --fixSpacing=false --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, rf, ff, args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&ff.outDir, "out", "o", ".", "Output directory")
	fs.BoolVar(&ff.compare, "compare", false, "Also write a side-by-side comparison page")
	fs.BoolVar(&ff.markdown, "markdown", false, "Also write Markdown")
	fs.BoolVar(&ff.pdf, "pdf", false, "Also write PDF")
	fs.BoolVar(&ff.json, "json", false, "Print the full result as JSON")
	fs.BoolVar(&ff.copy, "copy", false, "Copy the formatted HTML to the clipboard")
	addOptionFlags(fs)
	return cmd
}

func runFormat(cmd *cobra.Command, rf *rootFlags, ff *formatFlags, path string) error {
	log := rf.logger(cmd.ErrOrStderr())
	rules, err := rf.loadRules()
	if err != nil {
		return err
	}
	opts, err := options(cmd.Flags(), rules)
	if err != nil {
		return err
	}

	res, err := process(cmd.Context(), path, rules, opts, log)
	if err != nil {
		return err
	}

	name := res.Content.FileName
	base := parser.StripExtension(name)
	out := cmd.OutOrStdout()

	written := func(p string) {
		if !ff.json {
			fmt.Fprintf(out, "✓ Written: %s\n", p)
		}
	}

	page := export.StandalonePage(res.Content.Formatted.HTML, name)
	p, err := export.WriteFile(ff.outDir, export.FormattedFileName(name), []byte(page))
	if err != nil {
		return err
	}
	written(p)

	if ff.compare {
		cmp, err := export.ComparisonPage(res)
		if err != nil {
			return err
		}
		if p, err = export.WriteFile(ff.outDir, base+"_compare.html", []byte(cmp)); err != nil {
			return err
		}
		written(p)
	}

	if ff.markdown {
		md, err := export.ToMarkdown(res.Content.Formatted.HTML)
		if err != nil {
			return err
		}
		if p, err = export.WriteFile(ff.outDir, base+"_formatted.md", []byte(md)); err != nil {
			return err
		}
		written(p)
	}

	if ff.pdf {
		var buf bytes.Buffer
		if err := export.ToPDF(&buf, res.Content.Formatted.HTML, name); err != nil {
			return err
		}
		if p, err = export.WriteFile(ff.outDir, base+"_formatted.pdf", buf.Bytes()); err != nil {
			return err
		}
		written(p)
	}

	if ff.copy {
		if err := export.CopyHTML(export.SystemClipboard{}, res.Content.Formatted.HTML); err != nil {
			log.Debug("clipboard failed", "error", err)
			var ee *export.ExportError
			if errors.As(err, &ee) {
				return errors.New(ee.UserMessage())
			}
			return err
		}
		if !ff.json {
			fmt.Fprintln(out, "✓ Copied formatted HTML to clipboard")
		}
	}

	if ff.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return nil
}
