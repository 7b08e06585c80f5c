package domain

import "errors"

// Kinds. Every client-facing error unwraps to exactly one of these.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error pairs a kind with the message returned to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrMissingAttributes = &Error{Kind: ErrValidation, Message: "The request body is missing at least one of the required attributes"}
	ErrBusinessNotFound  = &Error{Kind: ErrNotFound, Message: "No business with this business_id exists"}
	ErrReviewNotFound    = &Error{Kind: ErrNotFound, Message: "No review with this review_id exists"}
	ErrLodgingNotFound   = &Error{Kind: ErrNotFound, Message: "No lodging with this lodging_id exists"}
	ErrDuplicateReview   = &Error{Kind: ErrConflict, Message: "You have already submitted a review for this business. You can update your previous review, or delete it and submit a new review"}
)
