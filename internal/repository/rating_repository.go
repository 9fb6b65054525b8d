package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrRatingNotFound = errors.New("rating not found")

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

const ratingColumns = `id, user_id, image_id, stars, created_at`

func scanRating(row pgx.Row) (models.Rating, error) {
	var rating models.Rating
	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&rating.ImageID,
		&rating.Stars,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Rating{}, ErrRatingNotFound
		}
		return models.Rating{}, err
	}
	return rating, nil
}

func (r *RatingRepository) Create(ctx context.Context, rating models.Rating) error {
	const query = `
		INSERT INTO ratings (id, user_id, image_id, stars, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		rating.ID,
		rating.UserID,
		rating.ImageID,
		rating.Stars,
	)
	return err
}

func (r *RatingRepository) GetByID(ctx context.Context, id string) (models.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE id = $1`
	return scanRating(r.pool.QueryRow(ctx, query, id))
}

func (r *RatingRepository) GetByUserAndImage(ctx context.Context, userID string, imageID string) (models.Rating, error) {
	const query = `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 AND image_id = $2`
	return scanRating(r.pool.QueryRow(ctx, query, userID, imageID))
}

// AverageForImage returns the arithmetic mean of the star values, or 0 when
// the image has no ratings.
func (r *RatingRepository) AverageForImage(ctx context.Context, imageID string) (float64, error) {
	const query = `SELECT COALESCE(AVG(stars), 0) FROM ratings WHERE image_id = $1`
	var avg float64
	if err := r.pool.QueryRow(ctx, query, imageID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *RatingRepository) UpdateStars(ctx context.Context, id string, stars int) error {
	const query = `UPDATE ratings SET stars = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, stars)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM ratings WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRatingNotFound
	}
	return nil
}
