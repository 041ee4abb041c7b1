// Package seed wipes and repopulates the campground collection with
// synthetic listings. It is a batch job run from the CLI, never from the
// server.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"

	"github.com/crucial707/campsite/internal/models"
	"github.com/crucial707/campsite/internal/repo"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCount is how many campgrounds a seeding run produces.
const DefaultCount = 300

const (
	seedUsername = "seeduser"
	seedEmail    = "seed@campsite.local"
)

// Run deletes every campground (reviews cascade with them) and inserts count
// fresh ones owned by a well-known seed account. The delete-then-insert
// contract means running it twice leaves exactly count rows, not 2*count.
func Run(ctx context.Context, db *sql.DB, count int) error {
	if count <= 0 {
		count = DefaultCount
	}

	users := repo.NewUserRepo(db)
	camps := repo.NewCampgroundRepo(db)

	author, err := ensureSeedUser(ctx, users)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	if err := camps.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear campgrounds: %w", err)
	}

	for i := 0; i < count; i++ {
		city := Cities[rand.Intn(len(Cities))]
		lng, lat := city.Longitude, city.Latitude

		camp, err := camps.Create(ctx, models.Campground{
			Title:       sample(Descriptors) + " " + sample(Places),
			Description: seedDescription,
			Price:       float64(rand.Intn(20) + 10),
			Location:    city.Name + ", " + city.State,
			Longitude:   &lng,
			Latitude:    &lat,
			AuthorID:    author.ID,
		})
		if err != nil {
			return fmt.Errorf("insert campground %d: %w", i, err)
		}

		if err := camps.AddImages(ctx, camp.ID, []models.Image{{
			URL:      seedImageURL,
			Filename: "seed/" + uuid.NewString(),
		}}); err != nil {
			return fmt.Errorf("attach image %d: %w", i, err)
		}
	}

	return nil
}

func ensureSeedUser(ctx context.Context, users *repo.UserRepo) (*models.User, error) {
	user, err := users.GetByUsername(ctx, seedUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return users.Create(ctx, seedUsername, seedEmail, string(hash))
}

func sample(list []string) string {
	return list[rand.Intn(len(list))]
}
