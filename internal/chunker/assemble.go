// Package chunker turns split nodes into linked document chunks.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sarama-ai/chunkd/internal/document"
	"github.com/sarama-ai/chunkd/internal/splitter"
)

const (
	chunkIDPrefix = "chunk_"
	chunkIDLen    = 16

	// Portion of content that feeds the chunk id and the title cutoff.
	idContentHead = 100
	titleMaxLen   = 100
)

// ChunkID derives a content-addressed identifier from the document id, the
// node's ordinal index, and the first 100 characters of its text.
// Re-chunking identical input reproduces identical ids.
func ChunkID(documentID string, index int, text string) string {
	head := text
	if r := []rune(head); len(r) > idContentHead {
		head = string(r[:idContentHead])
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s_%d_%s", documentID, index, head))
	return chunkIDPrefix + hex.EncodeToString(sum[:])[:chunkIDLen]
}

// LeafSet reports, per node index, whether the node is terminal: a node is a
// leaf iff no other node names it as parent. Purely structural.
func LeafSet(nodes []splitter.Node) []bool {
	leaves := make([]bool, len(nodes))
	for i := range leaves {
		leaves[i] = true
	}
	for _, n := range nodes {
		if n.Parent >= 0 && n.Parent < len(nodes) {
			leaves[n.Parent] = false
		}
	}
	return leaves
}

// Assemble maps each node to an unlinked Chunk in traversal order. The
// timestamp is shared across the call so one result set carries one assembly
// time.
func Assemble(doc document.Document, event document.EventType, nodes []splitter.Node, now time.Time) []document.Chunk {
	leaves := LeafSet(nodes)
	ts := now.UTC().Format(time.RFC3339)

	chunks := make([]document.Chunk, 0, len(nodes))
	for i, node := range nodes {
		nodeType := "parent"
		if leaves[i] {
			nodeType = "child"
		}
		chunks = append(chunks, document.Chunk{
			ID:            ChunkID(doc.ID, i, node.Text),
			DocumentID:    doc.ID,
			ChildChunkIDs: []string{},
			Title:         extractTitle(node.Text),
			Content:       node.Text,
			Header:        headerLabel(node.Level),
			Level:         node.Level,
			EventType:     string(event),
			Source:        string(doc.Source),
			DocumentTitle: doc.Title,
			Timestamp:     ts,
			Metadata: map[string]any{
				"is_leaf":      leaves[i],
				"node_type":    nodeType,
				"source_space": doc.SpaceKey,
			},
		})
	}
	return chunks
}

// extractTitle takes the first non-empty line, truncated with a marker.
func extractTitle(text string) string {
	var title string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}
	}
	if r := []rune(title); len(r) > titleMaxLen {
		title = string(r[:titleMaxLen]) + "..."
	}
	return title
}

// headerLabel synthesizes the hierarchy label for non-root levels.
func headerLabel(level int) string {
	if level > 0 {
		return fmt.Sprintf("Level %d", level)
	}
	return ""
}
