package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"business_reviews/internal/domain"
)

type businessRow struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	StreetAddress string        `db:"street_address"`
	OwnerID       sql.NullInt64 `db:"owner_id"`
	City          string        `db:"city"`
	State         string        `db:"state"`
	ZipCode       int64         `db:"zip_code"`
}

func (r businessRow) toDomain() domain.Business {
	return domain.Business{
		ID:            r.ID,
		OwnerID:       nullInt64(r.OwnerID),
		Name:          r.Name,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
	}
}

func businessesToDomain(rows []businessRow) []domain.Business {
	out := make([]domain.Business, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

func (s *Store) CreateBusiness(ctx context.Context, b domain.Business) (id int64, err error) {
	defer track("create_business", &err)()

	res, err := s.db.ExecContext(ctx, insertBusinessSQL,
		b.Name,
		b.StreetAddress,
		valInt64(b.OwnerID),
		b.City,
		b.State,
		b.ZipCode,
	)
	if err != nil {
		return 0, fmt.Errorf("insert business: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("business last insert id: %w", err)
	}
	return id, nil
}

func (s *Store) GetBusiness(ctx context.Context, id int64) (b domain.Business, err error) {
	defer track("get_business", &err)()

	var row businessRow
	if err = s.db.GetContext(ctx, &row, getBusinessSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Business{}, domain.ErrBusinessNotFound
		}
		return domain.Business{}, fmt.Errorf("get business %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (s *Store) ListBusinesses(ctx context.Context, pg domain.Page) (out []domain.Business, err error) {
	defer track("list_businesses", &err)()

	var rows []businessRow
	if err = s.db.SelectContext(ctx, &rows, listBusinessesSQL, pg.Limit, pg.Offset); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businessesToDomain(rows), nil
}

func (s *Store) ListBusinessesByOwner(ctx context.Context, ownerID int64) (out []domain.Business, err error) {
	defer track("list_businesses_by_owner", &err)()

	var rows []businessRow
	if err = s.db.SelectContext(ctx, &rows, listBusinessesByOwnerSQL, ownerID); err != nil {
		return nil, fmt.Errorf("list businesses of owner %d: %w", ownerID, err)
	}
	return businessesToDomain(rows), nil
}

// UpdateBusiness replaces every column. Existence is checked explicitly because
// MySQL reports zero affected rows for an update that changes nothing.
func (s *Store) UpdateBusiness(ctx context.Context, b domain.Business) (err error) {
	defer track("update_business", &err)()

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := businessExists(ctx, tx, b.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateBusinessSQL,
			b.Name,
			b.StreetAddress,
			valInt64(b.OwnerID),
			b.City,
			b.State,
			b.ZipCode,
			b.ID,
		); err != nil {
			return fmt.Errorf("update business %d: %w", b.ID, err)
		}
		return nil
	})
}

// DeleteBusiness removes the business's reviews first, then the business, in
// one transaction. Zero deleted businesses rolls the review delete back too.
func (s *Store) DeleteBusiness(ctx context.Context, id int64) (err error) {
	defer track("delete_business", &err)()

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteBusinessReviewsSQL, id); err != nil {
			return fmt.Errorf("delete reviews of business %d: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, deleteBusinessSQL, id)
		if err != nil {
			return fmt.Errorf("delete business %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete business %d rows affected: %w", id, err)
		}
		if n == 0 {
			return domain.ErrBusinessNotFound
		}
		return nil
	})
}

func businessExists(ctx context.Context, q sqlx.QueryerContext, id int64) error {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, businessExistsSQL, id); err != nil {
		return fmt.Errorf("check business %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (s *Store) BusinessExists(ctx context.Context, id int64) (err error) {
	defer track("business_exists", &err)()
	return businessExists(ctx, s.db, id)
}
