package httpserver

import (
	"fmt"
	"net/http"

	"business_reviews/internal/domain"
)

type reviewRequest struct {
	UserID     *int64  `json:"user_id"`
	BusinessID *int64  `json:"business_id"`
	Stars      *int    `json:"stars"`
	ReviewText *string `json:"review_text"`
}

type reviewResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Business   string `json:"business"`
	Stars      int    `json:"stars"`
	ReviewText string `json:"review_text"`
	Self       string `json:"self"`
}

func toReview(base string, rv domain.Review) reviewResponse {
	return reviewResponse{
		ID:         rv.ID,
		UserID:     rv.UserID,
		Business:   fmt.Sprintf("%s/businesses/%d", base, rv.BusinessID),
		Stars:      rv.Stars,
		ReviewText: rv.Text,
		Self:       fmt.Sprintf("%s/reviews/%d", base, rv.ID),
	}
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	rv, err := h.Reviews.Create(r.Context(), domain.ReviewInput{
		UserID:     req.UserID,
		BusinessID: req.BusinessID,
		Stars:      req.Stars,
		Text:       req.ReviewText,
	})
	if err != nil {
		fail(w, r, err, "An error occurred while adding the review")
		return
	}
	writeJSON(w, http.StatusCreated, toReview(baseURL(r), rv))
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrReviewNotFound.Message, "")
		return
	}
	rv, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err, "An error occurred while fetching the review")
		return
	}
	writeJSON(w, http.StatusOK, toReview(baseURL(r), rv))
}

// updateReview replaces stars; review_text only when present in the body.
func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrReviewNotFound.Message, "")
		return
	}
	var req reviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON, "")
		return
	}
	rv, err := h.Reviews.Update(r.Context(), id, domain.ReviewUpdate{Stars: req.Stars, Text: req.ReviewText})
	if err != nil {
		fail(w, r, err, "An error occurred while updating the review")
		return
	}
	writeJSON(w, http.StatusOK, toReview(baseURL(r), rv))
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrReviewNotFound.Message, "")
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		fail(w, r, err, "An error occurred while deleting the review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound, "")
		return
	}
	rvs, err := h.Reviews.ListByUser(r.Context(), userID)
	if err != nil {
		fail(w, r, err, "An error occurred while fetching user reviews")
		return
	}
	base := baseURL(r)
	out := make([]reviewResponse, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, toReview(base, rv))
	}
	writeJSON(w, http.StatusOK, out)
}
