package app

import (
	"context"

	"business_reviews/internal/adapters/observability"
	"business_reviews/internal/domain"
)

type BusinessService struct {
	repo domain.BusinessRepository
}

func NewBusinessService(r domain.BusinessRepository) *BusinessService {
	return &BusinessService{repo: r}
}

func (s *BusinessService) Create(ctx context.Context, in domain.BusinessInput) (domain.Business, error) {
	b, err := validateBusiness(in)
	if err != nil {
		observability.ObserveEntity("business", "rejected")
		return domain.Business{}, err
	}
	id, err := s.repo.CreateBusiness(ctx, b)
	if err != nil {
		return domain.Business{}, err
	}
	b.ID = id
	observability.ObserveEntity("business", "created")
	return b, nil
}

func (s *BusinessService) Get(ctx context.Context, id int64) (domain.Business, error) {
	return s.repo.GetBusiness(ctx, id)
}

// List returns one page in id order. The page is normalized, so callers can pass
// raw query values.
func (s *BusinessService) List(ctx context.Context, pg domain.Page) ([]domain.Business, domain.Page, error) {
	pg = normalizePage(pg)
	out, err := s.repo.ListBusinesses(ctx, pg)
	return out, pg, err
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Business, error) {
	return s.repo.ListBusinessesByOwner(ctx, ownerID)
}

// Update is a full replace of all six attributes. owner_id must be present,
// though an explicit null clears it.
func (s *BusinessService) Update(ctx context.Context, id int64, in domain.BusinessInput) (domain.Business, error) {
	b, err := validateBusiness(in)
	if err == nil && !in.OwnerIDSet {
		err = domain.ErrMissingAttributes
	}
	if err != nil {
		observability.ObserveEntity("business", "rejected")
		return domain.Business{}, err
	}
	b.ID = id
	if err := s.repo.UpdateBusiness(ctx, b); err != nil {
		return domain.Business{}, err
	}
	observability.ObserveEntity("business", "updated")
	return b, nil
}

func (s *BusinessService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	observability.ObserveEntity("business", "deleted")
	return nil
}

// validateBusiness requires name, street_address, city, state (non-empty) and a
// non-zero zip_code. owner_id is optional.
func validateBusiness(in domain.BusinessInput) (domain.Business, error) {
	if blank(in.Name) || blank(in.StreetAddress) || blank(in.City) || blank(in.State) ||
		in.ZipCode == nil || *in.ZipCode == 0 {
		return domain.Business{}, domain.ErrMissingAttributes
	}
	return domain.Business{
		OwnerID:       in.OwnerID,
		Name:          *in.Name,
		StreetAddress: *in.StreetAddress,
		City:          *in.City,
		State:         *in.State,
		ZipCode:       *in.ZipCode,
	}, nil
}

func normalizePage(pg domain.Page) domain.Page {
	if pg.Offset < 0 {
		pg.Offset = domain.DefaultPageOffset
	}
	if pg.Limit <= 0 {
		pg.Limit = domain.DefaultPageLimit
	}
	return pg
}

func blank(p *string) bool { return p == nil || *p == "" }
