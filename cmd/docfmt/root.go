package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootFlags struct {
	rules   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:   "docfmt",
		Short: "docfmt normalizes the structure of Word documents",
		Long: `docfmt converts a .docx file to HTML, reports on its heading, image and
code block structure, and rewrites it into a consistent house style.

Usage:
  docfmt format <file.docx> [flags]
  docfmt analyze <file.docx> [flags]`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&rf.rules, "rules", os.Getenv("RULES_FILE"), "YAML rules file (proper nouns, style map, option defaults)")
	root.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "v", false, "Log processing details to stderr")

	root.AddCommand(newFormatCmd(rf), newAnalyzeCmd(rf))
	return root
}

func (rf *rootFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if rf.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (rf *rootFlags) loadRules() (*config.Rules, error) {
	if rf.rules == "" {
		return nil, nil
	}
	return config.LoadRules(rf.rules)
}

// addOptionFlags registers one boolean flag per formatting option. Unset
// flags keep the value from the rules file.
func addOptionFlags(fs *pflag.FlagSet) {
	for _, name := range rewrite.OptionNames {
		fs.Bool(name, true, "apply the "+name+" rule")
	}
}

// options starts from the rules' defaults and applies only the flags the
// user set explicitly.
func options(fs *pflag.FlagSet, rules *config.Rules) (rewrite.Options, error) {
	opts := rules.DefaultOptions()
	for _, name := range rewrite.OptionNames {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return opts, err
		}
		opts.Set(name, v)
	}
	return opts, nil
}

// process runs path through the pipeline with the given options.
func process(ctx context.Context, path string, rules *config.Rules, opts rewrite.Options, log *slog.Logger) (*pipeline.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	proc := pipeline.NewProcessor(&parser.DocxConverter{}, rewrite.New(rules.Normalizer()), rules.StyleMappings(), config.DefaultMaxUploadBytes, log)
	if err := proc.Validate(name, info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := proc.Process(ctx, data, name, opts)
	if err != nil {
		log.Debug("process failed", "file", name, "error", err)
		return nil, fmt.Errorf("%s: %s", name, pipeline.UserMessage(err))
	}
	for _, msg := range res.Messages {
		log.Warn("conversion message", "file", name, "message", msg)
	}
	return res, nil
}
