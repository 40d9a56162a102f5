package callouts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"callouts/views/models"
	"callouts/views/pages"
)

const (
	sessionCookie     = "callouts_session"
	defaultTopN       = 5
	placeholderHeader = "X-Wordcloud-Placeholder"
)

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// calloutResponse adds the caller's liked state to a callout.
type calloutResponse struct {
	Callout
	LikedByMe bool `json:"likedByMe"`
}

// --- REST API Handlers ---

// ListCallouts handles GET /api/callouts
func (h *Handler) ListCallouts(w http.ResponseWriter, r *http.Request) {
	view, err := ParseView(r.URL.Query().Get("view"))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.listCallouts(w, r, ListQuery{
		View:  view,
		Word:  r.URL.Query().Get("word"),
		Limit: h.parseInt(r.URL.Query().Get("limit"), 0),
	})
}

// RecentCallouts handles GET /api/callouts/recent
func (h *Handler) RecentCallouts(w http.ResponseWriter, r *http.Request) {
	h.listCallouts(w, r, ListQuery{
		View:  ViewRecent,
		Limit: h.parseInt(r.URL.Query().Get("limit"), defaultTopN),
	})
}

// PopularCallouts handles GET /api/callouts/popular
func (h *Handler) PopularCallouts(w http.ResponseWriter, r *http.Request) {
	h.listCallouts(w, r, ListQuery{
		View:  ViewPopular,
		Limit: h.parseInt(r.URL.Query().Get("limit"), defaultTopN),
	})
}

func (h *Handler) listCallouts(w http.ResponseWriter, r *http.Request, q ListQuery) {
	list, err := h.svc.List(r.Context(), q)
	if err != nil {
		h.log.Error("failed to list callouts", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	tracker, err := h.svc.Likes(r.Context(), h.session(w, r))
	if err != nil {
		h.log.Error("failed to load likes", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]calloutResponse, len(list))
	for i, c := range list {
		out[i] = calloutResponse{Callout: c, LikedByMe: tracker.IsLiked(c.ID)}
	}
	h.jsonResponse(w, out, http.StatusOK)
}

// GetCallout handles GET /api/callouts/{id}
func (h *Handler) GetCallout(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, ErrCalloutNotFound) {
		h.jsonError(w, "callout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to get callout", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, c, http.StatusOK)
}

// SubmitCallout handles POST /api/callouts
func (h *Handler) SubmitCallout(w http.ResponseWriter, r *http.Request) {
	var input SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Submit(r.Context(), input)
	if errors.Is(err, ErrValidation) {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error("failed to save callout", "error", err)
		h.jsonError(w, "failed to save callout", http.StatusInternalServerError)
		return
	}

	h.log.Info("callout submitted", "id", c.ID, "person", c.Person)
	h.jsonResponse(w, map[string]any{"success": true, "callout": c}, http.StatusCreated)
}

// RecordView handles POST /api/callouts/{id}/view
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.RecordView(r.Context(), r.PathValue("id"))
	if errors.Is(err, ErrCalloutNotFound) {
		h.jsonError(w, "callout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to update views", "error", err)
		h.jsonError(w, "failed to update views", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, map[string]any{"success": true, "views": views}, http.StatusOK)
}

// ToggleLike handles POST /api/callouts/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ToggleLike(r.Context(), h.session(w, r), r.PathValue("id"))
	if errors.Is(err, ErrCalloutNotFound) {
		h.jsonError(w, "callout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to toggle like", "error", err)
		h.jsonError(w, "failed to update likes", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, map[string]any{"success": true, "likes": res.Likes, "liked": res.Liked}, http.StatusOK)
}

// WordCloud handles GET /api/wordcloud
func (h *Handler) WordCloud(w http.ResponseWriter, r *http.Request) {
	cloud, err := h.svc.WordCloud(r.Context())
	if err != nil {
		h.log.Error("failed to build word cloud", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if cloud.Placeholder {
		w.Header().Set(placeholderHeader, "true")
	}
	h.jsonResponse(w, cloud.Words, http.StatusOK)
}

// ListTraits handles GET /api/traits
func (h *Handler) ListTraits(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, Traits, http.StatusOK)
}

// --- Helper methods ---

// session returns the caller's session id, issuing a cookie on first use.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 60 * 60,
	})
	return id
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) parseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// --- View model converters ---

func (h *Handler) calloutsToViews(list []Callout, tracker *LikeTracker) []models.CalloutView {
	views := make([]models.CalloutView, len(list))
	for i, c := range list {
		views[i] = calloutToView(c, tracker)
	}
	return views
}

func calloutToView(c Callout, tracker *LikeTracker) models.CalloutView {
	return models.CalloutView{
		ID:         c.ID,
		Title:      c.Title,
		Person:     c.Person,
		Reason:     c.Reason,
		Categories: c.Categories,
		Submitter:  c.Submitter,
		Date:       c.Date,
		Views:      c.Views,
		Likes:      c.Likes,
		Liked:      tracker.IsLiked(c.ID),
	}
}

// wordsToViews scales each word between 0.8em and 2em relative to the most
// frequent one.
func (h *Handler) wordsToViews(cloud WordCloud) []models.WordView {
	maxFreq := 1
	for _, w := range cloud.Words {
		maxFreq = max(maxFreq, w.Freq)
	}

	views := make([]models.WordView, len(cloud.Words))
	for i, w := range cloud.Words {
		size := 1.2
		if !cloud.Placeholder {
			size = min(2.0, max(0.8, float64(w.Freq)/float64(maxFreq)*2.0))
		}
		views[i] = models.WordView{Word: w.Word, Freq: w.Freq, Size: size}
	}
	return views
}

// --- Web Handlers ---

// HomePage handles GET /
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := ViewPopular
	if v, err := ParseView(r.URL.Query().Get("view")); err == nil && r.URL.Query().Get("view") != "" {
		view = v
	}
	word := r.URL.Query().Get("word")

	list, err := h.svc.List(r.Context(), ListQuery{View: view, Word: word})
	if err != nil {
		h.log.Error("failed to list callouts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tracker, err := h.svc.Likes(r.Context(), h.session(w, r))
	if err != nil {
		h.log.Error("failed to load likes", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	cloud, err := h.svc.WordCloud(r.Context())
	if err != nil {
		h.log.Error("failed to build word cloud", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	state := models.ListState{View: string(view), Word: word, Total: h.svc.Count(r.Context())}
	pages.HomePage(h.wordsToViews(cloud), h.calloutsToViews(list, tracker), state).Render(r.Context(), w)
}

// CalloutPage handles GET /callouts/{id} and counts a view.
func (h *Handler) CalloutPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.svc.RecordView(r.Context(), id); err != nil && !errors.Is(err, ErrCalloutNotFound) {
		h.log.Warn("failed to record view", "id", id, "error", err)
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if errors.Is(err, ErrCalloutNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Error("failed to get callout", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tracker, err := h.svc.Likes(r.Context(), h.session(w, r))
	if err != nil {
		h.log.Error("failed to load likes", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pages.CalloutPage(calloutToView(*c, tracker), h.svc.RenderReason(c.Reason)).Render(r.Context(), w)
}

// LikeForm handles POST /callouts/{id}/like from the HTML pages.
func (h *Handler) LikeForm(w http.ResponseWriter, r *http.Request) {
	_, err := h.svc.ToggleLike(r.Context(), h.session(w, r), r.PathValue("id"))
	if err != nil && !errors.Is(err, ErrCalloutNotFound) {
		h.log.Error("failed to toggle like", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, localReferer(r), http.StatusSeeOther)
}

// localReferer returns the referer's path and query when it points back at
// this host, and "/" otherwise.
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	back := ref.RequestURI()
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return "/"
	}
	return back
}

// Register mounts the API and page routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/callouts", h.ListCallouts)
	mux.HandleFunc("GET /api/callouts/recent", h.RecentCallouts)
	mux.HandleFunc("GET /api/callouts/popular", h.PopularCallouts)
	mux.HandleFunc("GET /api/callouts/{id}", h.GetCallout)
	mux.HandleFunc("POST /api/callouts", h.SubmitCallout)
	mux.HandleFunc("POST /api/callouts/{id}/view", h.RecordView)
	mux.HandleFunc("POST /api/callouts/{id}/like", h.ToggleLike)
	mux.HandleFunc("GET /api/wordcloud", h.WordCloud)
	mux.HandleFunc("GET /api/traits", h.ListTraits)

	mux.HandleFunc("GET /", h.HomePage)
	mux.HandleFunc("GET /callouts/{id}", h.CalloutPage)
	mux.HandleFunc("POST /callouts/{id}/like", h.LikeForm)
}
