package domain

import (
	"context"
	"time"
)

type BusinessRepository interface {
	// Write paths
	CreateBusiness(ctx context.Context, b Business) (int64, error)
	UpdateBusiness(ctx context.Context, b Business) error
	// DeleteBusiness removes the business and every review that references it.
	DeleteBusiness(ctx context.Context, id int64) error

	// Read paths
	GetBusiness(ctx context.Context, id int64) (Business, error)
	ListBusinesses(ctx context.Context, pg Page) ([]Business, error)
	ListBusinessesByOwner(ctx context.Context, ownerID int64) ([]Business, error)
}

type ReviewRepository interface {
	// CreateReview checks that the business exists and that the (user, business)
	// pair is free before inserting, all in one transaction.
	CreateReview(ctx context.Context, r Review) (int64, error)
	UpdateReview(ctx context.Context, id int64, u ReviewUpdate) (Review, error)
	DeleteReview(ctx context.Context, id int64) error

	GetReview(ctx context.Context, id int64) (Review, error)
	ListReviewsByUser(ctx context.Context, userID int64) ([]Review, error)

	// BusinessExists returns ErrBusinessNotFound when no such business exists.
	BusinessExists(ctx context.Context, businessID int64) error
}

type LodgingRepository interface {
	CreateLodging(ctx context.Context, in LodgingInput) (int64, error)
	UpdateLodging(ctx context.Context, id int64, in LodgingInput) error
	DeleteLodging(ctx context.Context, id int64) error

	GetLodging(ctx context.Context, id int64) (Lodging, error)
	ListLodgings(ctx context.Context) ([]Lodging, error)
}

// SubmissionGuard serializes identical in-flight submissions across API replicas.
// ok=false means another holder owns the key.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
