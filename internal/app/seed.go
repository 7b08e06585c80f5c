package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"business_reviews/internal/domain"
)

// Fixture is the seed file layout: businesses with their reviews nested,
// plus standalone lodgings.
type Fixture struct {
	Businesses []FixtureBusiness `json:"businesses"`
	Lodgings   []FixtureLodging  `json:"lodgings"`
}

type FixtureBusiness struct {
	OwnerID       *int64          `json:"owner_id"`
	Name          *string         `json:"name"`
	StreetAddress *string         `json:"street_address"`
	City          *string         `json:"city"`
	State         *string         `json:"state"`
	ZipCode       *int64          `json:"zip_code"`
	Reviews       []FixtureReview `json:"reviews"`
}

type FixtureReview struct {
	UserID     *int64  `json:"user_id"`
	Stars      *int    `json:"stars"`
	ReviewText *string `json:"review_text"`
}

type FixtureLodging struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

type SeedReport struct {
	Businesses int64
	Reviews    int64
	Lodgings   int64
	Skipped    int64 // duplicate reviews
	Failed     int64
}

// Seeder loads fixtures through the same services the HTTP API uses, so every
// seeded row passes the normal validation and conflict rules.
type Seeder struct {
	businesses *BusinessService
	reviews    *ReviewService
	lodgings   *LodgingService
}

func NewSeeder(b *BusinessService, r *ReviewService, l *LodgingService) *Seeder {
	return &Seeder{businesses: b, reviews: r, lodgings: l}
}

// SeedBusiness creates the business first, then its reviews against the new id.
// Duplicate reviews are counted as skipped, not failed.
func (s *Seeder) SeedBusiness(ctx context.Context, fb FixtureBusiness) (id int64, created, skipped int, err error) {
	b, err := s.businesses.Create(ctx, domain.BusinessInput{
		OwnerID:       fb.OwnerID,
		Name:          fb.Name,
		StreetAddress: fb.StreetAddress,
		City:          fb.City,
		State:         fb.State,
		ZipCode:       fb.ZipCode,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create business: %w", err)
	}
	for i, fr := range fb.Reviews {
		_, rerr := s.reviews.Create(ctx, domain.ReviewInput{
			UserID:     fr.UserID,
			BusinessID: &b.ID,
			Stars:      fr.Stars,
			Text:       fr.ReviewText,
		})
		switch {
		case rerr == nil:
			created++
		case errors.Is(rerr, domain.ErrConflict):
			skipped++
		default:
			return b.ID, created, skipped, fmt.Errorf("review %d of business %d: %w", i, b.ID, rerr)
		}
	}
	return b.ID, created, skipped, nil
}

// Run seeds the fixture with at most workers concurrent businesses.
func (s *Seeder) Run(ctx context.Context, fx Fixture, workers int) (SeedReport, error) {
	if workers <= 0 {
		workers = 1
	}
	var rep SeedReport
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i := range fx.Businesses {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}
		wg.Add(1)
		go func(fb FixtureBusiness) {
			defer wg.Done()
			defer sem.Release(1)

			id, created, skipped, err := s.SeedBusiness(ctx, fb)
			atomic.AddInt64(&rep.Reviews, int64(created))
			atomic.AddInt64(&rep.Skipped, int64(skipped))
			if err != nil {
				atomic.AddInt64(&rep.Failed, 1)
				log.Warn().Err(err).Msg("seed business failed")
				return
			}
			atomic.AddInt64(&rep.Businesses, 1)
			log.Debug().Int64("id", id).Int("reviews", created).Msg("seeded business")
		}(fx.Businesses[i])
	}
	wg.Wait()

	for _, fl := range fx.Lodgings {
		if _, err := s.lodgings.Create(ctx, domain.LodgingInput{
			Name: fl.Name, Description: fl.Description, Price: fl.Price,
		}); err != nil {
			rep.Failed++
			log.Warn().Err(err).Msg("seed lodging failed")
			continue
		}
		rep.Lodgings++
	}
	return rep, nil
}
