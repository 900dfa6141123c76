package chunker

import (
	"github.com/sarama-ai/chunkd/internal/document"
	"github.com/sarama-ai/chunkd/internal/splitter"
)

// LinkAncestry wires parent/child pointers from the split tree's actual
// edges: a chunk's parent is the chunk assembled from its node's structural
// ancestor. chunks[i] must correspond to nodes[i]. Edges are kept mutual:
// a chunk appears in exactly one parent's child list, matching its own
// parent pointer.
func LinkAncestry(chunks []document.Chunk, nodes []splitter.Node) {
	for i := range chunks {
		p := nodes[i].Parent
		if p < 0 || p >= len(chunks) {
			continue
		}
		chunks[i].ParentChunkID = chunks[p].ID
		chunks[p].ChildChunkIDs = append(chunks[p].ChildChunkIDs, chunks[i].ID)
	}
}

// LinkAdjacent reproduces the legacy behavior where each chunk's parent is
// simply its list predecessor, regardless of tree structure. Kept only for
// bit-for-bit compatibility with output produced before ancestry linking;
// new deployments should not enable it.
func LinkAdjacent(chunks []document.Chunk) {
	for i := 1; i < len(chunks); i++ {
		chunks[i].ParentChunkID = chunks[i-1].ID
		chunks[i-1].ChildChunkIDs = append(chunks[i-1].ChildChunkIDs, chunks[i].ID)
	}
}
