package tika

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avencia/tika-batch/constants"
)

// Batch is an ordered, name-keyed collection of documents processed together
// against one base command. Insertion order is processing order.
type Batch struct {
	name  string
	order []string
	docs  map[string]*Document
}

// NewBatch creates an empty batch. The name only labels logs and job rows.
func NewBatch(name string) *Batch {
	return &Batch{name: name, docs: make(map[string]*Document)}
}

func (b *Batch) Name() string { return b.name }

// Add inserts a document keyed by its name. Adding a second document under
// the same name replaces the prior entry in place; the batch size and the
// original position are unchanged.
func (b *Batch) Add(d *Document) {
	if _, ok := b.docs[d.Name()]; !ok {
		b.order = append(b.order, d.Name())
	}
	b.docs[d.Name()] = d
}

// Get looks a document up by name.
func (b *Batch) Get(name string) (*Document, error) {
	d, ok := b.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, name)
	}
	return d, nil
}

// Documents returns the documents in insertion order.
func (b *Batch) Documents() []*Document {
	out := make([]*Document, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.docs[name])
	}
	return out
}

func (b *Batch) Len() int { return len(b.order) }

// Clear empties the collection. Documents already handed out keep whatever
// state they have.
func (b *Batch) Clear() {
	b.order = nil
	b.docs = make(map[string]*Document)
}

// ProcessedCount reports how many documents of b were fully processed before
// runErr. A nil runErr means the whole batch; an unrecognized error, or one
// naming a document not in the batch, counts as nothing processed.
func ProcessedCount(b *Batch, runErr error) int {
	if runErr == nil {
		return b.Len()
	}
	var failed string
	var exErr *ExtractionError
	var parseErr *OutputParseError
	switch {
	case errors.As(runErr, &exErr):
		failed = exErr.Document
	case errors.As(runErr, &parseErr):
		failed = parseErr.Document
	default:
		return 0
	}
	n := 0
	for _, doc := range b.Documents() {
		if doc.Name() == failed {
			return n
		}
		n++
	}
	return 0
}

// Extractor runs the external tool once per document and updates each
// document with the parsed result.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// NewExtractor creates an extractor with the exec-based runner.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	return NewExtractorWithRunner(cfg, execRunner{}, logger)
}

// NewExtractorWithRunner creates an extractor with a caller-supplied runner,
// for tests and embedders that stub process execution.
func NewExtractorWithRunner(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.defaults()
	return &Extractor{cfg: cfg, runner: r, logger: logger}
}

// ProcessBatch executes the tool for every document in insertion order,
// sequentially, one invocation at a time. The first failing document aborts
// the pass, whether the process exits non-zero or its output does not parse:
// earlier documents keep their results, later ones stay untouched,
// and the error is returned. Nothing is retried.
func (e *Extractor) ProcessBatch(ctx context.Context, b *Batch) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	base := BuildCommand(e.cfg)

	for _, doc := range b.Documents() {
		if err := e.processDocument(ctx, base, doc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) processDocument(ctx context.Context, base []string, doc *Document) error {
	argv := append(append([]string(nil), base...), documentArgs(doc)...)
	e.logger.Info("running extraction",
		"document", doc.Name(),
		"command", CommandString(argv),
	)

	runCtx := ctx
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	out, errb, err := e.runner.Run(runCtx, argv[0], argv[1:]...)
	if err != nil {
		return &ExtractionError{Document: doc.Name(), Stderr: string(errb), Err: err}
	}
	doc.SetRawOutput(string(out))

	return e.parseOutput(doc)
}

// parseOutput dispatches on the configured mode: metadata-only output is one
// flat JSON object; structured formats are a full markup document; anything
// else is stored as content verbatim.
func (e *Extractor) parseOutput(doc *Document) error {
	switch {
	case e.cfg.MetadataOnly:
		sink := NewSink(e.cfg.RecordType)
		if err := parseMetadataJSON(doc.RawOutput(), sink, e.cfg.StrictJSON); err != nil {
			return &OutputParseError{Document: doc.Name(), Mode: "json", Err: err}
		}
		doc.SetMetadata(sink)

	case e.cfg.OutputFormat.Structured():
		sink := NewSink(e.cfg.RecordType)
		var content string
		var hasBody bool
		var err error
		if e.cfg.OutputFormat == constants.FormatHTML {
			content, hasBody, err = parseStructuredHTML(doc.RawOutput(), sink)
		} else {
			content, hasBody, err = parseStructuredXML(doc.RawOutput(), sink)
		}
		if err != nil {
			return &OutputParseError{Document: doc.Name(), Mode: string(e.cfg.OutputFormat), Err: err}
		}
		doc.SetMetadata(sink)
		if hasBody {
			doc.SetContent(content)
		}

	default:
		doc.SetContent(doc.RawOutput())
	}
	return nil
}
