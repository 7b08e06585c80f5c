package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"business_reviews/internal/app"
	"business_reviews/internal/domain"
)

const (
	msgNotFound    = "The requested URL was not found on the server"
	msgInvalidJSON = "The request body is not valid JSON"
)

type Handlers struct {
	Businesses *app.BusinessService
	Reviews    *app.ReviewService
	Lodgings   *app.LodgingService
	// Ping backs /healthz when set.
	Ping func(ctx context.Context) error
}

type errorBody struct {
	Error   string `json:"Error"`
	Details string `json:"details,omitempty"`
}

// ids are digits only; anything else falls through to the JSON 404.
const idParam = "{id:[0-9]+}"

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", index)
	s.mux.Get("/healthz", h.healthz)

	s.mux.Post("/businesses", h.createBusiness)
	s.mux.Get("/businesses", h.listBusinesses)
	s.mux.Get("/businesses/"+idParam, h.getBusiness)
	s.mux.Put("/businesses/"+idParam, h.updateBusiness)
	s.mux.Delete("/businesses/"+idParam, h.deleteBusiness)
	s.mux.Get("/owners/{owner_id:[0-9]+}/businesses", h.listOwnerBusinesses)

	s.mux.Post("/reviews", h.createReview)
	s.mux.Get("/reviews/"+idParam, h.getReview)
	s.mux.Put("/reviews/"+idParam, h.updateReview)
	s.mux.Delete("/reviews/"+idParam, h.deleteReview)
	s.mux.Get("/users/{user_id:[0-9]+}/reviews", h.listUserReviews)

	s.mux.Post("/lodgings", h.createLodging)
	s.mux.Get("/lodgings", h.listLodgings)
	s.mux.Get("/lodgings/"+idParam, h.getLodging)
	s.mux.Put("/lodgings/"+idParam, h.updateLodging)
	s.mux.Delete("/lodgings/"+idParam, h.deleteLodging)
}

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Please navigate to /lodgings to use this API"))
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable", err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// fail maps a service error onto the envelope. Domain errors carry their own
// message; anything else is a storage failure reported with fallback.
func fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var de *domain.Error
	switch {
	case errors.As(err, &de) && errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, de.Message, "")
	case errors.As(err, &de) && errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, de.Message, "")
	case errors.As(err, &de) && errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, de.Message, "")
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Str("method", r.Method).Msg("storage failure")
		writeError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

// decode reads a JSON object into dst. An empty body leaves dst untouched so the
// service reports the missing attributes.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// queryInt mirrors lenient form parsing: bad or missing values yield def.
func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
