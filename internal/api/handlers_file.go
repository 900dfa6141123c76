package api

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sarama-ai/chunkd/internal/document"
	"github.com/sarama-ai/chunkd/internal/extract"
)

// handleChunkFile accepts a multipart file upload, extracts plain text by
// file type, and runs it through the same pipeline as POST /api/chunk.
func (s *Server) handleChunkFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	ex, err := extract.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := ex.Extract(bytes.NewReader(data))
	if err != nil {
		if text == "" {
			s.log.Error("extraction failed", "filename", filename, "error", err)
			jsonError(w, "chunking failed", http.StatusInternalServerError)
			return
		}
		s.log.Warn("extraction degraded, using fallback text", "filename", filename, "error", err)
	}

	sourceTag := r.FormValue("source")
	if sourceTag == "" {
		sourceTag = string(document.SourceConfluence)
	}
	source, err := document.ParseSource(sourceTag)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	eventTag := r.FormValue("event_type")
	if eventTag == "" {
		eventTag = string(document.EventCreated)
	}
	event, err := document.ParseEventType(eventTag)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = contentHashHex(data)[:16]
	}
	title := r.FormValue("title")
	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	doc := document.Document{
		ID:       docID,
		Title:    title,
		Content:  text,
		Source:   source,
		SpaceKey: r.FormValue("space_key"),
		Version:  1,
		Metadata: map[string]any{"filename": filename},
	}

	s.chunkAndRespond(r.Context(), w, doc, event)
}

// contentHashHex computes SHA-256 of content and returns a hex string.
func contentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
