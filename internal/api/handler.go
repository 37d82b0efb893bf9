package api

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shaun/quotewidget/internal/auth"
	"github.com/shaun/quotewidget/internal/github"
	"github.com/shaun/quotewidget/internal/logger"
	"github.com/shaun/quotewidget/internal/widget"
)

//go:embed static/index.html
var indexHTML []byte

type Handler struct {
	w   *widget.Widget
	log *slog.Logger
}

func NewHandler(w *widget.Widget, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{w: w, log: log}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, stateResponse(h.w.State()))
}

func (h *Handler) NewQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.w.NewQuote(r.Context())
	respondJSON(w, http.StatusOK, stateResponse(h.w.State()))
}

// Copy always answers 200; a clipboard failure shows up in the toast.
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	text, _ := h.w.Copy()
	respondJSON(w, http.StatusOK, CopyResponse{StateResponse: stateResponse(h.w.State()), Text: text})
}

// CopyFailed turns a rejected browser clipboard write into the failure toast.
// An empty or unreadable body still counts as a failure.
func (h *Handler) CopyFailed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req CopyFailedRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Reason == "" {
		req.Reason = "browser clipboard write rejected"
	}
	h.w.CopyFailed(req.Reason)
	respondJSON(w, http.StatusOK, stateResponse(h.w.State()))
}

// Publish answers 200 with the resulting status for validation and remote
// failures alike; only an unreadable body is a 400.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var form PublishForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if user, ok := auth.User(r.Context()); ok {
		h.log.Info("publish requested", "user", user, "repo", form.Repo, "path", form.Path)
	}
	out := h.w.Push(r.Context(), github.Request{
		Token:   form.Token,
		Repo:    form.Repo,
		Path:    form.Path,
		Message: form.Message,
	})
	respondJSON(w, http.StatusOK, PublishResponse{
		StateResponse: stateResponse(h.w.State()),
		Form:          PublishForm{Token: out.Token, Repo: out.Repo, Path: out.Path, Message: out.Message},
	})
}
