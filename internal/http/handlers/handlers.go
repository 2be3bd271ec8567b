package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	appgames "github.com/preston-bernstein/saturday-stats/internal/app/games"
	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/feed"
	"github.com/preston-bernstein/saturday-stats/internal/ingest"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/rotation"
	"github.com/preston-bernstein/saturday-stats/internal/timeutil"
)

const maxFeaturedBody = 16 << 10

type nowFunc func() time.Time

// Rotation is the slice of the scheduler the handlers read and steer.
type Rotation interface {
	Frame() rotation.Frame
	FeaturedIDs() []games.GameID
	SetFeatured(ids []games.GameID)
}

// Clips looks up highlight URLs for a game. It never fails.
type Clips interface {
	Clips(ctx context.Context, gameID string) []string
}

// Options carries the optional collaborators of a Handler.
type Options struct {
	Rotation   Rotation
	Highlights Clips
	Status     func() ingest.Status
	FeedStatus func() feed.Status
	Logger     *slog.Logger
}

// Handler serves the dashboard read model.
type Handler struct {
	svc        *appgames.Service
	rotation   Rotation
	highlights Clips
	statusFn   func() ingest.Status
	feedFn     func() feed.Status
	logger     *slog.Logger
	now        nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *appgames.Service, opts Options) *Handler {
	return &Handler{
		svc:        svc,
		rotation:   opts.Rotation,
		highlights: opts.Highlights,
		statusFn:   opts.Status,
		feedFn:     opts.FeedStatus,
		logger:     opts.Logger,
		now:        time.Now,
	}
}

// GamesResponse is the body of GET /games.
type GamesResponse struct {
	Date  string       `json:"date"`
	Games []games.Game `json:"games"`
}

// FeaturedRequest is the body of PUT /featured.
type FeaturedRequest struct {
	Featured []string `json:"featured"`
}

// FeaturedResponse is the body of GET and PUT /featured.
type FeaturedResponse struct {
	Featured []games.GameID `json:"featured"`
}

// ReadyResponse is the body of a passing GET /ready.
type ReadyResponse struct {
	Status string       `json:"status"`
	Games  int          `json:"games"`
	Feed   *feed.Status `json:"feed,omitempty"`
}

// Routes registers every read model endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/games", h.Games)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.GameByID)
		r.Get("/gamecast", h.Gamecast)
		r.Get("/scorebug", h.Scorebug)
		r.Get("/highlights", h.Highlights)
	})
	r.Get("/marquee", h.Marquee)
	r.Get("/frame", h.Frame)
	r.Get("/featured", h.Featured)
	r.Put("/featured", h.SetFeatured)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready passes once a batch has been accepted and fails after repeated rejections.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := ReadyResponse{Status: "ready", Games: len(h.svc.Games())}
	if h.feedFn != nil {
		st := h.feedFn()
		resp.Feed = &st
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, resp, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, resp, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Games returns the current list, or the games kicking off on ?date=YYYY-MM-DD.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	dateParam := strings.TrimSpace(r.URL.Query().Get("date"))
	resp := GamesResponse{Date: timeutil.SlateDate(h.now())}

	if dateParam == "" {
		resp.Games = h.svc.Games()
	} else {
		if _, err := timeutil.ParseDate(dateParam); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
		resp.Date = dateParam
		resp.Games = h.svc.GamesOn(dateParam)
	}

	logging.Info(loggerFromContext(r, h.logger), "served games",
		"date", resp.Date,
		logging.FieldCount, len(resp.Games),
	)
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	game, found := h.svc.GameByID(id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, h.logger)
}

// Gamecast returns the interpreted field view of a game.
func (h *Handler) Gamecast(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	view, found := h.svc.Gamecast(id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// Scorebug returns the compact score view of a game.
func (h *Handler) Scorebug(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	bug, found := h.svc.Scorebug(id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, bug, h.logger)
}

// Highlights always answers 200 with a JSON array, empty when nothing is known.
func (h *Handler) Highlights(w nethttp.ResponseWriter, r *nethttp.Request) {
	clips := []string{}
	if h.highlights != nil {
		clips = h.highlights.Clips(r.Context(), chi.URLParam(r, "id"))
	}
	writeJSON(w, nethttp.StatusOK, clips, h.logger)
}

// Marquee returns the ticker entries for every game.
func (h *Handler) Marquee(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.svc.Marquee(), h.logger)
}

// Frame returns the current display frame.
func (h *Handler) Frame(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.rotation == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rotation unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.Display(h.rotation.Frame()), h.logger)
}

// Featured returns the configured featured game ids.
func (h *Handler) Featured(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.rotation == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rotation unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, FeaturedResponse{Featured: nonNilIDs(h.rotation.FeaturedIDs())}, h.logger)
}

// SetFeatured replaces the featured game ids.
func (h *Handler) SetFeatured(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.rotation == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "rotation unavailable", h.logger)
		return
	}

	var req FeaturedRequest
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxFeaturedBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *nethttp.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, nethttp.StatusRequestEntityTooLarge, "request body too large", h.logger)
			return
		}
		writeError(w, r, nethttp.StatusBadRequest, "invalid featured request", h.logger)
		return
	}

	ids := make([]games.GameID, 0, len(req.Featured))
	for _, raw := range req.Featured {
		id := strings.TrimSpace(raw)
		if !validID(id) {
			writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
			return
		}
		ids = append(ids, games.GameID(id))
	}

	h.rotation.SetFeatured(ids)
	logging.Info(loggerFromContext(r, h.logger), "featured games updated", logging.FieldCount, len(ids))
	writeJSON(w, nethttp.StatusOK, FeaturedResponse{Featured: nonNilIDs(h.rotation.FeaturedIDs())}, h.logger)
}

func (h *Handler) gameID(w nethttp.ResponseWriter, r *nethttp.Request) (games.GameID, bool) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return "", false
	}
	return games.GameID(id), true
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, " \t/")
}

func nonNilIDs(ids []games.GameID) []games.GameID {
	if ids == nil {
		return []games.GameID{}
	}
	return ids
}
