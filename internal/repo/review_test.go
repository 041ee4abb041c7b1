package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/crucial707/campsite/internal/models"
)

func TestReviewRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO reviews \(campground_id, author_id, rating, body\)`).
		WithArgs(3, 7, 4, "Great spot").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, now))

	repo := NewReviewRepo(db)
	rev, err := repo.Create(context.Background(), models.Review{
		CampgroundID: 3,
		AuthorID:     7,
		Rating:       4,
		Body:         "Great spot",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rev.ID != 12 || rev.Rating != 4 {
		t.Errorf("unexpected review: %+v", rev)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReviewRepo_ListForCampground(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM reviews r JOIN users u ON u.id = r.author_id WHERE r.campground_id = \$1 ORDER BY r.created_at DESC`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campground_id", "author_id", "rating", "body", "created_at", "username"}).
			AddRow(2, 3, 8, 5, "Loved it", now, "bob").
			AddRow(1, 3, 7, 3, "Okay", now.Add(-time.Hour), "alice"))

	repo := NewReviewRepo(db)
	reviews, err := repo.ListForCampground(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListForCampground: %v", err)
	}
	if len(reviews) != 2 || reviews[0].AuthorName != "bob" || reviews[1].AuthorName != "alice" {
		t.Errorf("unexpected reviews: %+v", reviews)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReviewRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewReviewRepo(db)
	if err := repo.Delete(context.Background(), 12); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReviewRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewReviewRepo(db)
	err = repo.Delete(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("want sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
