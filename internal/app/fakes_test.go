package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"business_reviews/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	businesses map[int64]domain.Business
	reviews    map[int64]domain.Review
	lodgings   map[int64]domain.Lodging
	creates    int
	lastPage   domain.Page
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		businesses: map[int64]domain.Business{},
		reviews:    map[int64]domain.Review{},
		lodgings:   map[int64]domain.Lodging{},
	}
}

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) CreateBusiness(ctx context.Context, b domain.Business) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	b.ID = f.id()
	f.businesses[b.ID] = b
	return b.ID, nil
}

func (f *fakeStore) UpdateBusiness(ctx context.Context, b domain.Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.businesses[b.ID]; !ok {
		return domain.ErrBusinessNotFound
	}
	f.businesses[b.ID] = b
	return nil
}

func (f *fakeStore) DeleteBusiness(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.businesses[id]; !ok {
		return domain.ErrBusinessNotFound
	}
	delete(f.businesses, id)
	for rid, r := range f.reviews {
		if r.BusinessID == id {
			delete(f.reviews, rid)
		}
	}
	return nil
}

func (f *fakeStore) GetBusiness(ctx context.Context, id int64) (domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.businesses[id]
	if !ok {
		return domain.Business{}, domain.ErrBusinessNotFound
	}
	return b, nil
}

func (f *fakeStore) ListBusinesses(ctx context.Context, pg domain.Page) ([]domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = pg
	all := make([]domain.Business, 0, len(f.businesses))
	for _, b := range f.businesses {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if pg.Offset >= len(all) {
		return []domain.Business{}, nil
	}
	end := pg.Offset + pg.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[pg.Offset:end], nil
}

func (f *fakeStore) ListBusinessesByOwner(ctx context.Context, ownerID int64) ([]domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Business{}
	for _, b := range f.businesses {
		if b.OwnerID != nil && *b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReview(ctx context.Context, r domain.Review) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.businesses[r.BusinessID]; !ok {
		return 0, domain.ErrBusinessNotFound
	}
	for _, x := range f.reviews {
		if x.UserID == r.UserID && x.BusinessID == r.BusinessID {
			return 0, domain.ErrDuplicateReview
		}
	}
	r.ID = f.id()
	f.reviews[r.ID] = r
	return r.ID, nil
}

func (f *fakeStore) UpdateReview(ctx context.Context, id int64, u domain.ReviewUpdate) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	r.Stars = *u.Stars
	if u.Text != nil {
		r.Text = *u.Text
	}
	f.reviews[id] = r
	return r, nil
}

func (f *fakeStore) DeleteReview(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeStore) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeStore) ListReviewsByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Review{}
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) BusinessExists(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.businesses[id]; !ok {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (f *fakeStore) CreateLodging(ctx context.Context, in domain.LodgingInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name == nil || in.Description == nil || in.Price == nil {
		return 0, errors.New("NOT NULL constraint failed")
	}
	id := f.id()
	f.lodgings[id] = domain.Lodging{ID: id, Name: *in.Name, Description: *in.Description, Price: *in.Price}
	return id, nil
}

func (f *fakeStore) UpdateLodging(ctx context.Context, id int64, in domain.LodgingInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lodgings[id]; !ok {
		return domain.ErrLodgingNotFound
	}
	f.lodgings[id] = domain.Lodging{ID: id, Name: deref(in.Name), Description: deref(in.Description), Price: deref(in.Price)}
	return nil
}

func (f *fakeStore) DeleteLodging(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lodgings[id]; !ok {
		return domain.ErrLodgingNotFound
	}
	delete(f.lodgings, id)
	return nil
}

func (f *fakeStore) GetLodging(ctx context.Context, id int64) (domain.Lodging, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lodgings[id]
	if !ok {
		return domain.Lodging{}, domain.ErrLodgingNotFound
	}
	return l, nil
}

func (f *fakeStore) ListLodgings(ctx context.Context) ([]domain.Lodging, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Lodging{}
	for _, l := range f.lodgings {
		out = append(out, l)
	}
	return out, nil
}

type fakeGuard struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error
	released int
}

func (g *fakeGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, false, g.err
	}
	if g.held == nil {
		g.held = map[string]bool{}
	}
	if g.held[key] {
		return nil, false, nil
	}
	g.held[key] = true
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.held, key)
		g.released++
	}, true, nil
}

func ptr[T any](v T) *T { return &v }
func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
