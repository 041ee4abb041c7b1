package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/campsite/internal/models"
	"github.com/lib/pq"
)

type CampgroundRepo struct {
	DB *sql.DB
}

func NewCampgroundRepo(db *sql.DB) *CampgroundRepo {
	return &CampgroundRepo{DB: db}
}

// Create inserts a campground owned by c.AuthorID. The author is set once
// here and never changed by Update.
func (r *CampgroundRepo) Create(ctx context.Context, c models.Campground) (models.Campground, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO campgrounds (title, description, price, location, longitude, latitude, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.Title, c.Description, c.Price, c.Location, c.Longitude, c.Latitude, c.AuthorID,
	).Scan(&c.ID, &c.CreatedAt)
	return c, err
}

// GetByID returns one campground with its author name and images.
func (r *CampgroundRepo) GetByID(ctx context.Context, id int) (models.Campground, error) {
	var c models.Campground
	err := r.DB.QueryRowContext(ctx,
		`SELECT c.id, c.title, c.description, c.price, c.location, c.longitude, c.latitude,
		        c.author_id, c.created_at, u.username
		 FROM campgrounds c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.id = $1`,
		id,
	).Scan(
		&c.ID, &c.Title, &c.Description, &c.Price, &c.Location, &c.Longitude, &c.Latitude,
		&c.AuthorID, &c.CreatedAt, &c.AuthorName,
	)
	if err != nil {
		return c, err
	}

	images, err := r.imagesFor(ctx, []int{c.ID})
	if err != nil {
		return c, err
	}
	c.Images = images[c.ID]
	return c, nil
}

// ListPaginated returns campgrounds ordered by id with their images attached.
func (r *CampgroundRepo) ListPaginated(ctx context.Context, limit, offset int) ([]models.Campground, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.title, c.description, c.price, c.location, c.longitude, c.latitude,
		        c.author_id, c.created_at, u.username
		 FROM campgrounds c
		 JOIN users u ON u.id = c.author_id
		 ORDER BY c.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

// SearchPaginated filters by title or location, case-insensitive.
func (r *CampgroundRepo) SearchPaginated(ctx context.Context, query string, limit, offset int) ([]models.Campground, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.title, c.description, c.price, c.location, c.longitude, c.latitude,
		        c.author_id, c.created_at, u.username
		 FROM campgrounds c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.title ILIKE $1 OR c.location ILIKE $1
		 ORDER BY c.id
		 LIMIT $2 OFFSET $3`,
		"%"+query+"%", limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collect(ctx, rows)
}

// Update rewrites the mutable fields. author_id is deliberately untouched.
func (r *CampgroundRepo) Update(ctx context.Context, c models.Campground) (models.Campground, error) {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE campgrounds
		 SET title = $1, description = $2, price = $3, location = $4, longitude = $5, latitude = $6
		 WHERE id = $7
		 RETURNING author_id, created_at`,
		c.Title, c.Description, c.Price, c.Location, c.Longitude, c.Latitude, c.ID,
	).Scan(&c.AuthorID, &c.CreatedAt)
	return c, err
}

// Delete removes the campground together with its reviews and image rows in
// one transaction and returns the object-store keys of the removed images so
// the caller can clean up storage.
func (r *CampgroundRepo) Delete(ctx context.Context, id int) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE campground_id = $1`, id); err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`DELETE FROM campground_images WHERE campground_id = $1 RETURNING filename`, id)
	if err != nil {
		return nil, err
	}
	var filenames []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			rows.Close()
			return nil, err
		}
		filenames = append(filenames, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM campgrounds WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sql.ErrNoRows
	}

	return filenames, tx.Commit()
}

// DeleteAll wipes every campground (with reviews and image rows). Used by the
// seeder's delete-then-insert batch contract.
func (r *CampgroundRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM campground_images`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM campgrounds`); err != nil {
		return err
	}
	return tx.Commit()
}

// Count returns the number of campgrounds.
func (r *CampgroundRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM campgrounds`).Scan(&n)
	return n, err
}

// AddImages attaches uploaded images to a campground.
func (r *CampgroundRepo) AddImages(ctx context.Context, campgroundID int, images []models.Image) error {
	for _, img := range images {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO campground_images (campground_id, url, filename) VALUES ($1, $2, $3)`,
			campgroundID, img.URL, img.Filename,
		); err != nil {
			return err
		}
	}
	return nil
}

// DeleteImages removes the named images from a campground and returns the
// filenames actually deleted.
func (r *CampgroundRepo) DeleteImages(ctx context.Context, campgroundID int, filenames []string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`DELETE FROM campground_images
		 WHERE campground_id = $1 AND filename = ANY($2)
		 RETURNING filename`,
		campgroundID, pq.Array(filenames),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deleted []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		deleted = append(deleted, f)
	}
	return deleted, rows.Err()
}

func (r *CampgroundRepo) collect(ctx context.Context, rows *sql.Rows) ([]models.Campground, error) {
	var camps []models.Campground
	var ids []int
	for rows.Next() {
		var c models.Campground
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Price, &c.Location, &c.Longitude, &c.Latitude,
			&c.AuthorID, &c.CreatedAt, &c.AuthorName,
		); err != nil {
			return nil, err
		}
		camps = append(camps, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(camps) == 0 {
		return camps, nil
	}

	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range camps {
		camps[i].Images = images[camps[i].ID]
	}
	return camps, nil
}

// imagesFor loads images for a set of campgrounds in one query.
func (r *CampgroundRepo) imagesFor(ctx context.Context, campgroundIDs []int) (map[int][]models.Image, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, campground_id, url, filename
		 FROM campground_images
		 WHERE campground_id = ANY($1)
		 ORDER BY id`,
		pq.Array(campgroundIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]models.Image)
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.CampgroundID, &img.URL, &img.Filename); err != nil {
			return nil, err
		}
		out[img.CampgroundID] = append(out[img.CampgroundID], img)
	}
	return out, rows.Err()
}
