// Package service orchestrates the chunking pipeline: extract, split,
// classify, assemble, link. Each call is stateless; the only shared
// dependency is the injected logger.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarama-ai/chunkd/internal/chunker"
	"github.com/sarama-ai/chunkd/internal/document"
	"github.com/sarama-ai/chunkd/internal/extract"
	"github.com/sarama-ai/chunkd/internal/splitter"
)

// Chunker is the chunking service contract consumed by the API layer.
type Chunker interface {
	ChunkDocument(ctx context.Context, doc document.Document, event document.EventType) ([]document.Chunk, error)
}

// Service implements Chunker over a pluggable splitter.
type Service struct {
	splitter splitter.Splitter
	log      *slog.Logger

	// legacyLinking switches the linker to list-adjacency parents for
	// compatibility with previously indexed output.
	legacyLinking bool

	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLegacyLinking enables list-adjacency parent linking.
func WithLegacyLinking() Option {
	return func(s *Service) { s.legacyLinking = true }
}

// WithClock overrides the assembly timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a chunking service.
func New(sp splitter.Splitter, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		splitter: sp,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChunkDocument converts one document into its linked chunk graph.
// Unrecognized source or event-type tags surface as document.ErrInvalidInput;
// any other fault surfaces as document.ErrChunkingFailed. Empty content
// short-circuits to an empty result without invoking the splitter.
func (s *Service) ChunkDocument(ctx context.Context, doc document.Document, event document.EventType) ([]document.Chunk, error) {
	log := s.log.With("document_id", doc.ID)

	if doc.ID == "" {
		return nil, fmt.Errorf("%w: document id is required", document.ErrInvalidInput)
	}
	if !doc.Source.Valid() {
		return nil, fmt.Errorf("%w: unknown source %q", document.ErrInvalidInput, doc.Source)
	}
	if !event.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", document.ErrInvalidInput, event)
	}

	if doc.Content == "" {
		log.Warn("empty document content, skipping chunking")
		return []document.Chunk{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", document.ErrChunkingFailed, err)
	}

	text, err := extract.HTMLText(doc.Content)
	if err != nil {
		// Recovered locally: the extractor already returned the raw content.
		log.Warn("html extraction failed, using raw content", "error", err)
	}

	nodes := s.splitter.Split(text)
	log.Info("split document", "node_count", len(nodes))

	chunks := chunker.Assemble(doc, event, nodes, s.now())
	if s.legacyLinking {
		chunker.LinkAdjacent(chunks)
	} else {
		chunker.LinkAncestry(chunks, nodes)
	}

	log.Info("chunked document",
		"chunk_count", len(chunks),
		"root_chunks", countRoots(chunks),
	)
	return chunks, nil
}

func countRoots(chunks []document.Chunk) int {
	n := 0
	for _, c := range chunks {
		if c.ParentChunkID == "" {
			n++
		}
	}
	return n
}
