package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chatline/services"

	"github.com/go-chi/chi/v5"
)

type MessageHandler struct {
	messages  services.IMessageService
	directory services.IDirectoryService
	log       *slog.Logger
}

func NewMessageHandler(messages services.IMessageService, directory services.IDirectoryService, log *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, directory: directory, log: log}
}

// GET /api/contacts
func (h *MessageHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.directory.Contacts(r.Context(), CallerID(r.Context()))
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	items := make([]ProfileItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, ProfileItem{ID: p.ID, Name: p.Name, AvatarURL: p.AvatarURL})
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /api/messages/{userID}
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	otherUserID := chi.URLParam(r, "userID")

	entries, err := h.messages.Thread(r.Context(), CallerID(r.Context()), otherUserID)
	if err != nil {
		writeError(h.log, w, err)
		return
	}

	items := make([]MessageItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toMessageItem(e))
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /api/messages/{userID}
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	otherUserID := chi.URLParam(r, "userID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	message, err := h.messages.Send(r.Context(), CallerID(r.Context()), otherUserID, req.Text, req.Image)
	if err != nil {
		writeError(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCreatedMessageItem(message))
}
