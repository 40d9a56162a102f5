// Package site serves the contact form, newsletter signup and text
// formatting endpoints that sit beside the callout API.
package site

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"callouts/internal/events"
	"callouts/internal/markup"
)

type Handler struct {
	events events.Publisher
	md     *markup.Renderer
	log    *slog.Logger
	now    func() time.Time
}

func NewHandler(pub events.Publisher, log *slog.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler{events: pub, md: markup.New(), log: log, now: time.Now}
}

type contactInput struct {
	Name    string `json:"contactName"`
	Email   string `json:"contactEmail"`
	Message string `json:"contactMessage"`
}

type subscribeInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

type formatInput struct {
	Text string `json:"text"`
}

// Contact handles POST /api/contact
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	in.Name, in.Email, in.Message = strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		h.jsonError(w, "all fields are required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		h.jsonError(w, "invalid email address", http.StatusBadRequest)
		return
	}

	h.log.Info("contact form submission", "name", in.Name, "email", in.Email)
	h.publish(events.ContactReceived, events.ContactReceivedEvent{
		Name:       in.Name,
		Email:      in.Email,
		Message:    in.Message,
		ReceivedAt: h.now().UTC(),
	})

	h.jsonResponse(w, map[string]any{
		"success": true,
		"message": "Thank you for your message! We'll get back to you soon.",
	}, http.StatusOK)
}

// Subscribe handles POST /api/subscribe
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in subscribeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		h.jsonError(w, "email is required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		h.jsonError(w, "invalid email address", http.StatusBadRequest)
		return
	}

	h.log.Info("newsletter subscription", "email", in.Email)
	h.publish(events.NewsletterSubscribed, events.NewsletterSubscribedEvent{
		Email:        in.Email,
		FirstName:    strings.TrimSpace(in.FirstName),
		SubscribedAt: h.now().UTC(),
	})

	h.jsonResponse(w, map[string]any{
		"success": true,
		"message": "Successfully subscribed to our newsletter!",
	}, http.StatusOK)
}

// FormatText handles POST /api/format-text
func (h *Handler) FormatText(w http.ResponseWriter, r *http.Request) {
	var in formatInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		h.jsonError(w, "text content is required", http.StatusBadRequest)
		return
	}

	h.jsonResponse(w, map[string]string{"formatted": h.md.Render(in.Text)}, http.StatusOK)
}

func (h *Handler) publish(subject string, event any) {
	if err := h.events.Publish(subject, event); err != nil {
		h.log.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, map[string]string{"error": message}, status)
}

// Register mounts the site routes on mux. Subscribe is also served on the
// older convertkit path.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.Contact)
	mux.HandleFunc("POST /api/subscribe", h.Subscribe)
	mux.HandleFunc("POST /api/convertkit/subscribe", h.Subscribe)
	mux.HandleFunc("POST /api/format-text", h.FormatText)
}
