package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"business_reviews/internal/adapters/observability"
	"business_reviews/internal/domain"
)

type ReviewService struct {
	repo     domain.ReviewRepository
	guard    domain.SubmissionGuard // nil disables
	guardTTL time.Duration
}

func NewReviewService(r domain.ReviewRepository, g domain.SubmissionGuard, guardTTL time.Duration) *ReviewService {
	if guardTTL <= 0 {
		guardTTL = 10 * time.Second
	}
	return &ReviewService{repo: r, guard: g, guardTTL: guardTTL}
}

// Create: required attributes -> guard -> (business exists -> pair free -> insert).
// The parenthesized part runs in one storage transaction.
func (s *ReviewService) Create(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	if in.UserID == nil || in.BusinessID == nil || in.Stars == nil {
		observability.ObserveEntity("review", "rejected")
		return domain.Review{}, domain.ErrMissingAttributes
	}
	r := domain.Review{UserID: *in.UserID, BusinessID: *in.BusinessID, Stars: *in.Stars}
	if in.Text != nil {
		r.Text = *in.Text
	}

	if s.guard != nil {
		key := fmt.Sprintf("review-submit:%d:%d", r.UserID, r.BusinessID)
		release, ok, err := s.guard.Acquire(ctx, key, s.guardTTL)
		switch {
		case err != nil:
			// fail open: the unique index still rejects duplicates
			log.Warn().Err(err).Str("key", key).Msg("submission guard unavailable")
		case !ok:
			// a missing business is still reported as 404, not as a busy key
			if err := s.repo.BusinessExists(ctx, r.BusinessID); err != nil {
				return domain.Review{}, err
			}
			observability.ObserveEntity("review", "conflict")
			return domain.Review{}, domain.ErrDuplicateReview
		default:
			defer release()
		}
	}

	id, err := s.repo.CreateReview(ctx, r)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.ObserveEntity("review", "conflict")
		}
		return domain.Review{}, err
	}
	r.ID = id
	observability.ObserveEntity("review", "created")
	return r, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (domain.Review, error) {
	return s.repo.GetReview(ctx, id)
}

// Update requires stars; text is kept unless u.Text is set.
func (s *ReviewService) Update(ctx context.Context, id int64, u domain.ReviewUpdate) (domain.Review, error) {
	if u.Stars == nil {
		observability.ObserveEntity("review", "rejected")
		return domain.Review{}, domain.ErrMissingAttributes
	}
	r, err := s.repo.UpdateReview(ctx, id, u)
	if err != nil {
		return domain.Review{}, err
	}
	observability.ObserveEntity("review", "updated")
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	observability.ObserveEntity("review", "deleted")
	return nil
}

// ListByUser does not check the user exists; an unknown user yields an empty list.
func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.repo.ListReviewsByUser(ctx, userID)
}
