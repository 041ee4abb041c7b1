package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/campsite/internal/models"
)

type ReviewRepo struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{DB: db}
}

// Create inserts a review for a campground.
func (r *ReviewRepo) Create(ctx context.Context, rev models.Review) (models.Review, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO reviews (campground_id, author_id, rating, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rev.CampgroundID, rev.AuthorID, rev.Rating, rev.Body,
	).Scan(&rev.ID, &rev.CreatedAt)
	return rev, err
}

// GetByID returns one review.
func (r *ReviewRepo) GetByID(ctx context.Context, id int) (models.Review, error) {
	var rev models.Review
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, campground_id, author_id, rating, body, created_at
		 FROM reviews
		 WHERE id = $1`,
		id,
	).Scan(&rev.ID, &rev.CampgroundID, &rev.AuthorID, &rev.Rating, &rev.Body, &rev.CreatedAt)
	return rev, err
}

// ListForCampground returns a campground's reviews, newest first, with author names.
func (r *ReviewRepo) ListForCampground(ctx context.Context, campgroundID int) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.campground_id, r.author_id, r.rating, r.body, r.created_at, u.username
		 FROM reviews r
		 JOIN users u ON u.id = r.author_id
		 WHERE r.campground_id = $1
		 ORDER BY r.created_at DESC`,
		campgroundID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.CampgroundID, &rev.AuthorID, &rev.Rating, &rev.Body, &rev.CreatedAt, &rev.AuthorName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// CountForCampground returns how many reviews a campground has.
func (r *ReviewRepo) CountForCampground(ctx context.Context, campgroundID int) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE campground_id = $1`, campgroundID).Scan(&n)
	return n, err
}

// Delete removes one review.
func (r *ReviewRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
