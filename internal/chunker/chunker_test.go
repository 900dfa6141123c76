package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sarama-ai/chunkd/internal/document"
	"github.com/sarama-ai/chunkd/internal/splitter"
)

var testDoc = document.Document{
	ID:       "d1",
	Title:    "Test Document",
	Source:   document.SourceConfluence,
	SpaceKey: "ENG",
	Version:  1,
}

func testNodes() []splitter.Node {
	return []splitter.Node{
		{Text: "Parent span one with enough words to matter.", Level: 0, Parent: -1},
		{Text: "Child one of parent one.", Level: 1, Parent: 0},
		{Text: "Child two of parent one.", Level: 1, Parent: 0},
		{Text: "Parent span two, a leaf with no children.", Level: 0, Parent: -1},
	}
}

func TestChunkID_Deterministic(t *testing.T) {
	a := ChunkID("d1", 0, "some content")
	b := ChunkID("d1", 0, "some content")
	if a != b {
		t.Errorf("expected identical ids, got %q and %q", a, b)
	}
	if ChunkID("d1", 1, "some content") == a {
		t.Error("different index must produce a different id")
	}
	if ChunkID("d2", 0, "some content") == a {
		t.Error("different document must produce a different id")
	}
}

func TestChunkID_Format(t *testing.T) {
	id := ChunkID("d1", 0, "content")
	if !strings.HasPrefix(id, "chunk_") {
		t.Errorf("expected chunk_ prefix, got %q", id)
	}
	hexPart := strings.TrimPrefix(id, "chunk_")
	if len(hexPart) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(hexPart))
	}
	if _, err := hex.DecodeString(hexPart); err != nil {
		t.Errorf("id suffix is not hex: %v", err)
	}
}

func TestChunkID_RoundTrip(t *testing.T) {
	// The id must be reproducible from (document id, index, first 100 chars).
	text := strings.Repeat("abcdefghij", 20)
	id := ChunkID("d1", 3, text)

	sum := sha256.Sum256([]byte(fmt.Sprintf("d1_3_%s", text[:100])))
	want := "chunk_" + hex.EncodeToString(sum[:])[:16]
	if id != want {
		t.Errorf("expected %q, got %q", want, id)
	}
}

func TestLeafSet(t *testing.T) {
	leaves := LeafSet(testNodes())
	want := []bool{false, true, true, true}
	for i, w := range want {
		if leaves[i] != w {
			t.Errorf("node %d: expected leaf=%v, got %v", i, w, leaves[i])
		}
	}
}

func TestAssemble_Fields(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	chunks := Assemble(testDoc, document.EventCreated, testNodes(), now)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.DocumentID != "d1" {
			t.Errorf("chunk %d: expected document_id d1, got %q", i, c.DocumentID)
		}
		if c.EventType != "created" {
			t.Errorf("chunk %d: expected event_type created, got %q", i, c.EventType)
		}
		if c.Source != "confluence" {
			t.Errorf("chunk %d: expected source confluence, got %q", i, c.Source)
		}
		if c.DocumentTitle != "Test Document" {
			t.Errorf("chunk %d: expected document title, got %q", i, c.DocumentTitle)
		}
		if c.Timestamp != "2026-03-15T12:00:00Z" {
			t.Errorf("chunk %d: expected RFC3339 UTC timestamp, got %q", i, c.Timestamp)
		}
		if c.Metadata["source_space"] != "ENG" {
			t.Errorf("chunk %d: expected source_space ENG, got %v", i, c.Metadata["source_space"])
		}
		if c.ParentChunkID != "" || len(c.ChildChunkIDs) != 0 {
			t.Errorf("chunk %d: assembly must not link", i)
		}
	}

	// Node 0 is a parent, node 1 a leaf.
	if chunks[0].Metadata["is_leaf"] != false || chunks[0].Metadata["node_type"] != "parent" {
		t.Errorf("chunk 0: expected parent metadata, got %v", chunks[0].Metadata)
	}
	if chunks[1].Metadata["is_leaf"] != true || chunks[1].Metadata["node_type"] != "child" {
		t.Errorf("chunk 1: expected leaf metadata, got %v", chunks[1].Metadata)
	}

	// Levels drive the synthetic header.
	if chunks[0].Header != "" {
		t.Errorf("level 0 chunk must have empty header, got %q", chunks[0].Header)
	}
	if chunks[1].Header != "Level 1" {
		t.Errorf("expected header %q, got %q", "Level 1", chunks[1].Header)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Title line\nbody text", "Title line"},
		{"skips empty lines", "\n\n  \nActual title\nmore", "Actual title"},
		{"empty text", "", ""},
		{"long line truncated", strings.Repeat("a", 150), strings.Repeat("a", 100) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.text); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLinkAncestry(t *testing.T) {
	nodes := testNodes()
	chunks := Assemble(testDoc, document.EventCreated, nodes, time.Now())
	LinkAncestry(chunks, nodes)

	if chunks[0].ParentChunkID != "" {
		t.Errorf("root chunk must have no parent, got %q", chunks[0].ParentChunkID)
	}
	if chunks[3].ParentChunkID != "" {
		t.Errorf("second root must have no parent, got %q", chunks[3].ParentChunkID)
	}
	if chunks[1].ParentChunkID != chunks[0].ID {
		t.Errorf("chunk 1: expected parent %q, got %q", chunks[0].ID, chunks[1].ParentChunkID)
	}
	if chunks[2].ParentChunkID != chunks[0].ID {
		t.Errorf("chunk 2: expected parent %q, got %q", chunks[0].ID, chunks[2].ParentChunkID)
	}
	if len(chunks[0].ChildChunkIDs) != 2 {
		t.Fatalf("expected 2 children on chunk 0, got %d", len(chunks[0].ChildChunkIDs))
	}

	assertMutualEdges(t, chunks)
}

func TestLinkAdjacent(t *testing.T) {
	nodes := testNodes()
	chunks := Assemble(testDoc, document.EventCreated, nodes, time.Now())
	LinkAdjacent(chunks)

	if chunks[0].ParentChunkID != "" {
		t.Errorf("chunk 0 must be the only root, got parent %q", chunks[0].ParentChunkID)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].ParentChunkID != chunks[i-1].ID {
			t.Errorf("chunk %d: expected list predecessor as parent", i)
		}
	}

	assertMutualEdges(t, chunks)
}

func TestLink_EmptyList(t *testing.T) {
	LinkAncestry(nil, nil)
	LinkAdjacent(nil)
}

// assertMutualEdges checks that every parent pointer has a matching child
// list entry and vice versa, and that each chunk appears in at most one
// parent's child list.
func assertMutualEdges(t *testing.T, chunks []document.Chunk) {
	t.Helper()

	byID := make(map[string]*document.Chunk, len(chunks))
	for i := range chunks {
		byID[chunks[i].ID] = &chunks[i]
	}

	claimed := make(map[string]int)
	for _, c := range chunks {
		for _, childID := range c.ChildChunkIDs {
			claimed[childID]++
			child, ok := byID[childID]
			if !ok {
				t.Errorf("child id %q not present in result set", childID)
				continue
			}
			if child.ParentChunkID != c.ID {
				t.Errorf("child %q: parent pointer %q does not match claiming parent %q", childID, child.ParentChunkID, c.ID)
			}
		}
	}
	for _, c := range chunks {
		if c.ParentChunkID == "" {
			continue
		}
		if claimed[c.ID] != 1 {
			t.Errorf("chunk %q: expected exactly one parent claim, got %d", c.ID, claimed[c.ID])
		}
		if _, ok := byID[c.ParentChunkID]; !ok {
			t.Errorf("chunk %q: parent %q not present in result set", c.ID, c.ParentChunkID)
		}
	}
}
