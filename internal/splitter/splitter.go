// Package splitter partitions normalized text into a tree of nodes at
// decreasing granularity. The tree is returned as a flat list in depth-first
// preorder: each parent span is followed by the child spans carved out of it.
package splitter

import "strings"

// Node is one span in the split tree. Nodes are transient: they exist only
// for the duration of a single chunking call.
type Node struct {
	Text   string
	Level  int // Depth from root; 0 is the coarsest span.
	Parent int // Index of the parent node in the flat list, -1 for roots.
}

// Splitter turns text into an ordered node list. Implementations must be
// deterministic for identical input.
type Splitter interface {
	Split(text string) []Node
}

// Config controls hierarchical splitting.
type Config struct {
	ChildSize    int // Target child (leaf) chunk size in characters.
	ChildOverlap int // Overlap between adjacent child chunks in characters.
	ParentSize   int // Target parent chunk size in characters.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChildSize:    512,
		ChildOverlap: 50,
		ParentSize:   1536,
	}
}

// separators is the prioritized list tried from coarse to fine. A finer
// separator is only used when a candidate still exceeds the target size.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Hierarchical splits text into parent-size spans, then carves each parent
// into overlapping child-size spans.
type Hierarchical struct {
	cfg Config
}

// NewHierarchical creates a splitter with the given sizes. Non-positive
// values fall back to defaults.
func NewHierarchical(cfg Config) *Hierarchical {
	def := DefaultConfig()
	if cfg.ChildSize <= 0 {
		cfg.ChildSize = def.ChildSize
	}
	if cfg.ChildOverlap < 0 {
		cfg.ChildOverlap = def.ChildOverlap
	}
	if cfg.ParentSize <= 0 {
		cfg.ParentSize = def.ParentSize
	}
	return &Hierarchical{cfg: cfg}
}

// Split partitions text into the flat node list. Empty or whitespace-only
// input yields an empty list.
func (h *Hierarchical) Split(text string) []Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var nodes []Node
	for _, span := range split(text, h.cfg.ParentSize, separators) {
		parentIdx := len(nodes)
		nodes = append(nodes, Node{Text: span, Level: 0, Parent: -1})

		pieces := split(span, h.cfg.ChildSize, separators)
		if len(pieces) < 2 {
			// The parent already fits the child target; it is its own leaf.
			continue
		}
		for _, piece := range withOverlap(pieces, h.cfg.ChildOverlap) {
			nodes = append(nodes, Node{Text: piece, Level: 1, Parent: parentIdx})
		}
	}
	return nodes
}

// split breaks text into spans of at most size characters, preferring the
// coarsest separator and recursing with finer ones for oversized pieces.
func split(text string, size int, seps []string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 || seps[0] == "" {
		return hardSplit(text, size)
	}

	sep, rest := seps[0], seps[1:]
	var out []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			out = append(out, s)
		}
		current.Reset()
	}

	for _, part := range strings.SplitAfter(text, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if len(part) > size {
			// This piece alone exceeds the target; fall back to the next
			// finer separator.
			flush()
			out = append(out, split(part, size, rest)...)
			continue
		}
		if current.Len()+len(part) > size && current.Len() > 0 {
			flush()
		}
		current.WriteString(part)
	}
	flush()

	return out
}

// hardSplit cuts text into fixed-size rune windows as the last resort.
func hardSplit(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// withOverlap prefixes each span after the first with the tail of its
// predecessor, cut to a word boundary.
func withOverlap(pieces []string, overlap int) []string {
	if overlap <= 0 || len(pieces) < 2 {
		return pieces
	}
	out := make([]string, len(pieces))
	out[0] = pieces[0]
	for i := 1; i < len(pieces); i++ {
		tail := overlapTail(pieces[i-1], overlap)
		if tail == "" {
			out[i] = pieces[i]
			continue
		}
		out[i] = tail + " " + pieces[i]
	}
	return out
}

// overlapTail returns the last overlap characters of text, trimmed forward
// to the next word boundary so spans never start mid-word.
func overlapTail(text string, overlap int) string {
	runes := []rune(text)
	if len(runes) <= overlap {
		return ""
	}
	tail := string(runes[len(runes)-overlap:])
	if idx := strings.IndexByte(tail, ' '); idx >= 0 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}
