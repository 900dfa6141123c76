package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sarama-ai/chunkd/internal/document"
)

// confluenceWebhook is the payload Confluence posts on page events.
type confluenceWebhook struct {
	Event string `json:"event"`
	Page  struct {
		ID       int            `json:"id"`
		Title    string         `json:"title"`
		Body     string         `json:"body"`
		SpaceKey string         `json:"space_key"`
		Version  int            `json:"version"`
		Metadata map[string]any `json:"metadata"`
	} `json:"page"`
}

// handleConfluenceWebhook maps a Confluence page event onto the chunking
// pipeline. Event names arrive as "page_created", "page_updated",
// "page_deleted" (the bare forms are accepted too).
func (s *Server) handleConfluenceWebhook(w http.ResponseWriter, r *http.Request) {
	var webhook confluenceWebhook
	if err := json.NewDecoder(r.Body).Decode(&webhook); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if webhook.Page.ID == 0 {
		jsonError(w, "page.id is required", http.StatusBadRequest)
		return
	}

	event, err := document.ParseEventType(strings.TrimPrefix(webhook.Event, "page_"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("confluence webhook received",
		"event", webhook.Event,
		"page_id", webhook.Page.ID,
		"page_title", webhook.Page.Title,
	)

	doc := document.Document{
		ID:       strconv.Itoa(webhook.Page.ID),
		Title:    webhook.Page.Title,
		Content:  webhook.Page.Body,
		Source:   document.SourceConfluence,
		SpaceKey: webhook.Page.SpaceKey,
		Version:  webhook.Page.Version,
		Metadata: webhook.Page.Metadata,
	}

	s.chunkAndRespond(r.Context(), w, doc, event)
}
