package httpserver

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"business_reviews/internal/domain"
)

// ownerField records whether owner_id was sent at all; null is a valid value.
type ownerField struct {
	Set   bool
	Value *int64
}

func (o *ownerField) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

type businessRequest struct {
	OwnerID       ownerField `json:"owner_id"`
	Name          *string    `json:"name"`
	StreetAddress *string    `json:"street_address"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	ZipCode       *int64     `json:"zip_code"`
}

func (b businessRequest) input() domain.BusinessInput {
	return domain.BusinessInput{
		OwnerID:       b.OwnerID.Value,
		OwnerIDSet:    b.OwnerID.Set,
		Name:          b.Name,
		StreetAddress: b.StreetAddress,
		City:          b.City,
		State:         b.State,
		ZipCode:       b.ZipCode,
	}
}

type businessResponse struct {
	ID            int64  `json:"id"`
	OwnerID       *int64 `json:"owner_id"`
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       int64  `json:"zip_code"`
	Self          string `json:"self"`
}

type businessPage struct {
	Entries []businessResponse `json:"entries"`
	Next    string             `json:"next"`
}

func toBusiness(base string, b domain.Business) businessResponse {
	return businessResponse{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		StreetAddress: b.StreetAddress,
		City:          b.City,
		State:         b.State,
		ZipCode:       b.ZipCode,
		Self:          fmt.Sprintf("%s/businesses/%d", base, b.ID),
	}
}

func toBusinesses(base string, bs []domain.Business) []businessResponse {
	out := make([]businessResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBusiness(base, b))
	}
	return out
}

func (h *Handlers) createBusiness(w http.ResponseWriter, r *http.Request) {
	var req businessRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	b, err := h.Businesses.Create(r.Context(), req.input())
	if err != nil {
		fail(w, r, err, "An error occurred while adding the business")
		return
	}
	writeJSON(w, http.StatusCreated, toBusiness(baseURL(r), b))
}

func (h *Handlers) getBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrBusinessNotFound.Message, "")
		return
	}
	b, err := h.Businesses.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err, "An error occurred while fetching the business")
		return
	}
	writeJSON(w, http.StatusOK, toBusiness(baseURL(r), b))
}

// listBusinesses always emits next, even past the last page.
func (h *Handlers) listBusinesses(w http.ResponseWriter, r *http.Request) {
	pg := domain.Page{
		Offset: queryInt(r, "offset", domain.DefaultPageOffset),
		Limit:  queryInt(r, "limit", domain.DefaultPageLimit),
	}
	bs, pg, err := h.Businesses.List(r.Context(), pg)
	if err != nil {
		fail(w, r, err, "An error occurred while fetching the businesses")
		return
	}
	base := baseURL(r)
	writeJSON(w, http.StatusOK, businessPage{
		Entries: toBusinesses(base, bs),
		Next:    fmt.Sprintf("%s/businesses?offset=%d&limit=%d", base, nextOffset(pg), pg.Limit),
	})
}

// nextOffset saturates instead of wrapping for huge query values.
func nextOffset(pg domain.Page) int {
	if pg.Offset > math.MaxInt-pg.Limit {
		return math.MaxInt
	}
	return pg.Offset + pg.Limit
}

func (h *Handlers) listOwnerBusinesses(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "owner_id")
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound, "")
		return
	}
	bs, err := h.Businesses.ListByOwner(r.Context(), ownerID)
	if err != nil {
		fail(w, r, err, "An error occurred while fetching the businesses associated with the owner")
		return
	}
	writeJSON(w, http.StatusOK, toBusinesses(baseURL(r), bs))
}

func (h *Handlers) updateBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrBusinessNotFound.Message, "")
		return
	}
	var req businessRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	b, err := h.Businesses.Update(r.Context(), id, req.input())
	if err != nil {
		fail(w, r, err, "An error occurred while updating the business")
		return
	}
	writeJSON(w, http.StatusOK, toBusiness(baseURL(r), b))
}

func (h *Handlers) deleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrBusinessNotFound.Message, "")
		return
	}
	if err := h.Businesses.Delete(r.Context(), id); err != nil {
		fail(w, r, err, "An error occurred while deleting the business")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
