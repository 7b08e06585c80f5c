package app

import (
	"context"

	"business_reviews/internal/adapters/observability"
	"business_reviews/internal/domain"
)

// LodgingService performs no attribute validation.
type LodgingService struct {
	repo domain.LodgingRepository
}

func NewLodgingService(r domain.LodgingRepository) *LodgingService {
	return &LodgingService{repo: r}
}

func (s *LodgingService) Create(ctx context.Context, in domain.LodgingInput) (domain.Lodging, error) {
	id, err := s.repo.CreateLodging(ctx, in)
	if err != nil {
		return domain.Lodging{}, err
	}
	observability.ObserveEntity("lodging", "created")
	return lodgingFromInput(id, in), nil
}

func (s *LodgingService) Get(ctx context.Context, id int64) (domain.Lodging, error) {
	return s.repo.GetLodging(ctx, id)
}

func (s *LodgingService) List(ctx context.Context) ([]domain.Lodging, error) {
	return s.repo.ListLodgings(ctx)
}

func (s *LodgingService) Update(ctx context.Context, id int64, in domain.LodgingInput) (domain.Lodging, error) {
	if err := s.repo.UpdateLodging(ctx, id, in); err != nil {
		return domain.Lodging{}, err
	}
	observability.ObserveEntity("lodging", "updated")
	return lodgingFromInput(id, in), nil
}

func (s *LodgingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLodging(ctx, id); err != nil {
		return err
	}
	observability.ObserveEntity("lodging", "deleted")
	return nil
}

func lodgingFromInput(id int64, in domain.LodgingInput) domain.Lodging {
	return domain.Lodging{ID: id, Name: deref(in.Name), Description: deref(in.Description), Price: deref(in.Price)}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
