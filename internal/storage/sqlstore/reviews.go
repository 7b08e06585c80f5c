package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"business_reviews/internal/domain"
)

type reviewRow struct {
	ID         int64          `db:"id"`
	UserID     int64          `db:"user_id"`
	BusinessID int64          `db:"business_id"`
	Stars      int            `db:"stars"`
	ReviewText sql.NullString `db:"review_text"`
}

func (r reviewRow) toDomain() domain.Review {
	return domain.Review{
		ID:         r.ID,
		UserID:     r.UserID,
		BusinessID: r.BusinessID,
		Stars:      r.Stars,
		Text:       r.ReviewText.String,
	}
}

// CreateReview: business exists -> pair is free -> insert, in one transaction.
// The unique index on (user_id, business_id) is the authoritative guard; the
// pre-check only produces the friendlier error earlier.
func (s *Store) CreateReview(ctx context.Context, r domain.Review) (id int64, err error) {
	defer track("create_review", &err)()

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := businessExists(ctx, tx, r.BusinessID); err != nil {
			return err
		}

		var n int
		if err := tx.GetContext(ctx, &n, reviewPairExistsSQL, r.UserID, r.BusinessID); err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if n > 0 {
			return domain.ErrDuplicateReview
		}

		res, err := tx.ExecContext(ctx, insertReviewSQL, r.UserID, r.BusinessID, r.Stars, r.Text)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateReview
			}
			return fmt.Errorf("insert review: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("review last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) GetReview(ctx context.Context, id int64) (r domain.Review, err error) {
	defer track("get_review", &err)()
	return getReview(ctx, s.db, id)
}

func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) (out []domain.Review, err error) {
	defer track("list_reviews_by_user", &err)()

	var rows []reviewRow
	if err = s.db.SelectContext(ctx, &rows, listReviewsByUserSQL, userID); err != nil {
		return nil, fmt.Errorf("list reviews of user %d: %w", userID, err)
	}
	out = make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpdateReview sets stars and, when u.Text is non-nil, the text; the stored
// row is re-read so user_id and business_id come from storage.
func (s *Store) UpdateReview(ctx context.Context, id int64, u domain.ReviewUpdate) (r domain.Review, err error) {
	defer track("update_review", &err)()

	if u.Stars == nil {
		return domain.Review{}, domain.ErrMissingAttributes
	}
	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getReview(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateReviewSQL, *u.Stars, valStr(u.Text), id); err != nil {
			return fmt.Errorf("update review %d: %w", id, err)
		}
		var gerr error
		r, gerr = getReview(ctx, tx, id)
		return gerr
	})
	if err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

func (s *Store) DeleteReview(ctx context.Context, id int64) (err error) {
	defer track("delete_review", &err)()

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getReview(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteReviewSQL, id); err != nil {
			return fmt.Errorf("delete review %d: %w", id, err)
		}
		return nil
	})
}

func getReview(ctx context.Context, q sqlx.QueryerContext, id int64) (domain.Review, error) {
	var row reviewRow
	if err := sqlx.GetContext(ctx, q, &row, getReviewSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrReviewNotFound
		}
		return domain.Review{}, fmt.Errorf("get review %d: %w", id, err)
	}
	return row.toDomain(), nil
}
