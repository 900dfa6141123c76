package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sarama-ai/chunkd/internal/document"
)

// chunkingRequest is the JSON body of POST /api/chunk.
type chunkingRequest struct {
	Document  documentInput `json:"document"`
	EventType string        `json:"event_type"`
}

type documentInput struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Source   string         `json:"source"`
	SpaceKey string         `json:"space_key"`
	Version  int            `json:"version"`
	Metadata map[string]any `json:"metadata"`
}

// chunkingResponse is the JSON body returned by all chunk-producing
// endpoints. Timestamp is taken from the first chunk, empty when none.
type chunkingResponse struct {
	Chunks           []document.Chunk `json:"chunks"`
	DocumentID       string           `json:"document_id"`
	ChunkCount       int              `json:"chunk_count"`
	ParentChunkCount int              `json:"parent_chunk_count"`
	Timestamp        string           `json:"timestamp"`
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req chunkingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Document.ID == "" {
		jsonError(w, "document.id is required", http.StatusBadRequest)
		return
	}

	source, err := document.ParseSource(req.Document.Source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	event, err := document.ParseEventType(req.EventType)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := document.Document{
		ID:       req.Document.ID,
		Title:    req.Document.Title,
		Content:  req.Document.Content,
		Source:   source,
		SpaceKey: req.Document.SpaceKey,
		Version:  req.Document.Version,
		Metadata: req.Document.Metadata,
	}

	s.chunkAndRespond(r.Context(), w, doc, event)
}

// chunkAndRespond runs the pipeline and writes the shared response shape,
// mapping caller mistakes and service faults to distinct status codes.
func (s *Server) chunkAndRespond(ctx context.Context, w http.ResponseWriter, doc document.Document, event document.EventType) {
	chunks, err := s.svc.ChunkDocument(ctx, doc, event)
	if err != nil {
		if errors.Is(err, document.ErrInvalidInput) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("chunking failed", "document_id", doc.ID, "error", err)
		jsonError(w, "chunking failed", http.StatusInternalServerError)
		return
	}

	resp := chunkingResponse{
		Chunks:     chunks,
		DocumentID: doc.ID,
		ChunkCount: len(chunks),
	}
	for _, c := range chunks {
		if c.ParentChunkID == "" {
			resp.ParentChunkCount++
		}
	}
	if len(chunks) > 0 {
		resp.Timestamp = chunks[0].Timestamp
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
