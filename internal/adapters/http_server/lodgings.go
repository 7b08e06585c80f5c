package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"business_reviews/internal/domain"
)

// Lodging attributes are not type-checked here; whatever was sent goes to
// storage and the column types decide.
type lodgingRequest struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Price       json.RawMessage `json:"price"`
}

func (l lodgingRequest) input() domain.LodgingInput {
	return domain.LodgingInput{Name: rawText(l.Name), Description: rawText(l.Description), Price: rawText(l.Price)}
}

// rawText yields nil for an absent or null value, the contents of a JSON
// string, and the literal text of anything else.
func rawText(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	t := string(raw)
	return &t
}

// Price crosses from fixed-point storage to a float in JSON; precision loss is accepted.
type lodgingResponse struct {
	LodgingID   int64   `json:"lodging_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func toLodging(l domain.Lodging) lodgingResponse {
	price, err := strconv.ParseFloat(l.Price, 64)
	if err != nil {
		log.Warn().Err(err).Int64("lodging_id", l.ID).Str("price", l.Price).Msg("unparseable lodging price")
	}
	return lodgingResponse{LodgingID: l.ID, Name: l.Name, Description: l.Description, Price: price}
}

func (h *Handlers) createLodging(w http.ResponseWriter, r *http.Request) {
	var req lodgingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	l, err := h.Lodgings.Create(r.Context(), req.input())
	if err != nil {
		fail(w, r, err, "Unable to create lodging")
		return
	}
	writeJSON(w, http.StatusCreated, toLodging(l))
}

func (h *Handlers) listLodgings(w http.ResponseWriter, r *http.Request) {
	ls, err := h.Lodgings.List(r.Context())
	if err != nil {
		fail(w, r, err, "Unable to fetch lodgings")
		return
	}
	out := make([]lodgingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, toLodging(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrLodgingNotFound.Message, "")
		return
	}
	l, err := h.Lodgings.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err, "Unable to fetch lodging")
		return
	}
	writeJSON(w, http.StatusOK, toLodging(l))
}

// updateLodging replaces all three fields unconditionally.
func (h *Handlers) updateLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrLodgingNotFound.Message, "")
		return
	}
	var req lodgingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	l, err := h.Lodgings.Update(r.Context(), id, req.input())
	if err != nil {
		fail(w, r, err, "Unable to update lodging")
		return
	}
	writeJSON(w, http.StatusOK, toLodging(l))
}

func (h *Handlers) deleteLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrLodgingNotFound.Message, "")
		return
	}
	if err := h.Lodgings.Delete(r.Context(), id); err != nil {
		fail(w, r, err, "Unable to delete lodging")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
