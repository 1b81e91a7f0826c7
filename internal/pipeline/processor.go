package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/docfmt/internal/analyze"
	"github.com/dgallion1/docfmt/internal/doctree"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/google/uuid"
)

// Processor runs one document through validation, conversion, analysis and
// rewriting. It holds no per-document state and is safe for concurrent use.
type Processor struct {
	converter parser.Converter
	rewriter  *rewrite.Rewriter
	styleMap  []parser.StyleMapping
	maxBytes  int64
	log       *slog.Logger
}

func NewProcessor(converter parser.Converter, rewriter *rewrite.Rewriter, styleMap []parser.StyleMapping, maxBytes int64, log *slog.Logger) *Processor {
	if styleMap == nil {
		styleMap = parser.DefaultStyleMap()
	}
	if rewriter == nil {
		rewriter = rewrite.New(nil)
	}
	return &Processor{
		converter: converter,
		rewriter:  rewriter,
		styleMap:  styleMap,
		maxBytes:  maxBytes,
		log:       log,
	}
}

// Validate checks the file name and size without converting anything.
func (p *Processor) Validate(fileName string, size int64) error {
	if !parser.IsSupportedExtension(fileName) {
		return &ValidationError{Reason: ErrUnsupportedFileType}
	}
	if size > p.maxBytes {
		return &ValidationError{Reason: ErrFileTooLarge, Limit: p.maxBytes}
	}
	return nil
}

// Process converts data and returns the analyzed, rewritten document. On
// error the result is nil.
func (p *Processor) Process(ctx context.Context, data []byte, fileName string, opts rewrite.Options) (*Result, error) {
	log := p.log.With("file", fileName, "bytes", len(data))

	if err := p.Validate(fileName, int64(len(data))); err != nil {
		log.Info("rejected upload", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	conv, err := p.converter.Convert(data, p.styleMap)
	if err != nil {
		log.Warn("conversion failed", "error", err)
		return nil, &ConversionError{Stage: "convert", Err: err}
	}
	for _, m := range conv.Messages {
		log.Debug("converter message", "message", m)
	}

	doc, err := doctree.Parse(conv.HTML)
	if err != nil {
		log.Warn("html parse failed", "error", err)
		return nil, &ConversionError{Stage: "parse", Err: err}
	}

	analysis := analyze.Analyze(doc)
	stats := p.rewriter.Rewrite(doc, opts, fileName)

	formatted, err := doc.HTML()
	if err != nil {
		return nil, &ConversionError{Stage: "parse", Err: err}
	}

	messages := conv.Messages
	if messages == nil {
		messages = []string{}
	}
	res := &Result{
		ID: uuid.NewString(),
		Content: DocumentContent{
			Original:  Version{HTML: conv.HTML, Text: conv.RawText},
			Formatted: Version{HTML: formatted, Text: doc.Text()},
			FileName:  fileName,
		},
		Analysis:    analysis,
		Messages:    messages,
		ContentHash: ContentHashHex(data),
		CreatedAt:   time.Now(),
	}

	log.Info("processed document",
		"id", res.ID,
		"duration_ms", time.Since(start).Milliseconds(),
		"issues", len(analysis.Issues),
		"headings_rewritten", stats.HeadingsRewritten,
		"captions_prefixed", stats.CaptionsPrefixed,
		"code_blocks_labeled", stats.CodeBlocksLabeled,
	)
	return res, nil
}
