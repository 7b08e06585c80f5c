package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"business_reviews/internal/domain"
)

// Price is scanned as text: MySQL hands DECIMAL back as bytes, SQLite as a
// number, and both convert to string without going through float64 here.
type lodgingRow struct {
	LodgingID   int64  `db:"lodging_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       string `db:"price"`
}

func (r lodgingRow) toDomain() domain.Lodging {
	return domain.Lodging{ID: r.LodgingID, Name: r.Name, Description: r.Description, Price: r.Price}
}

// CreateLodging does not validate; NOT NULL columns reject missing attributes.
func (s *Store) CreateLodging(ctx context.Context, in domain.LodgingInput) (id int64, err error) {
	defer track("create_lodging", &err)()

	res, err := s.db.ExecContext(ctx, insertLodgingSQL, valStr(in.Name), valStr(in.Description), valStr(in.Price))
	if err != nil {
		return 0, fmt.Errorf("insert lodging: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("lodging last insert id: %w", err)
	}
	return id, nil
}

func (s *Store) GetLodging(ctx context.Context, id int64) (l domain.Lodging, err error) {
	defer track("get_lodging", &err)()

	var row lodgingRow
	if err = s.db.GetContext(ctx, &row, getLodgingSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lodging{}, domain.ErrLodgingNotFound
		}
		return domain.Lodging{}, fmt.Errorf("get lodging %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (s *Store) ListLodgings(ctx context.Context) (out []domain.Lodging, err error) {
	defer track("list_lodgings", &err)()

	var rows []lodgingRow
	if err = s.db.SelectContext(ctx, &rows, listLodgingsSQL); err != nil {
		return nil, fmt.Errorf("list lodgings: %w", err)
	}
	out = make([]domain.Lodging, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) UpdateLodging(ctx context.Context, id int64, in domain.LodgingInput) (err error) {
	defer track("update_lodging", &err)()

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n, lodgingExistsSQL, id); err != nil {
			return fmt.Errorf("check lodging %d: %w", id, err)
		}
		if n == 0 {
			return domain.ErrLodgingNotFound
		}
		if _, err := tx.ExecContext(ctx, updateLodgingSQL,
			valStr(in.Name), valStr(in.Description), valStr(in.Price), id,
		); err != nil {
			return fmt.Errorf("update lodging %d: %w", id, err)
		}
		return nil
	})
}

func (s *Store) DeleteLodging(ctx context.Context, id int64) (err error) {
	defer track("delete_lodging", &err)()

	res, err := s.db.ExecContext(ctx, deleteLodgingSQL, id)
	if err != nil {
		return fmt.Errorf("delete lodging %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lodging %d rows affected: %w", id, err)
	}
	if n == 0 {
		return domain.ErrLodgingNotFound
	}
	return nil
}
