package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrTransformedImageNotFound = errors.New("transformed image not found")

type TransformedImageRepository struct {
	pool *pgxpool.Pool
}

func NewTransformedImageRepository(pool *pgxpool.Pool) *TransformedImageRepository {
	return &TransformedImageRepository{pool: pool}
}

const transformedColumns = `id, image_id, transform_url, qr_url, created_at`

func scanTransformedImage(row pgx.Row) (models.TransformedImage, error) {
	var ti models.TransformedImage
	err := row.Scan(
		&ti.ID,
		&ti.ImageID,
		&ti.TransformURL,
		&ti.QRCodeURL,
		&ti.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TransformedImage{}, ErrTransformedImageNotFound
		}
		return models.TransformedImage{}, err
	}
	return ti, nil
}

func (r *TransformedImageRepository) Create(ctx context.Context, ti models.TransformedImage) error {
	const query = `
		INSERT INTO transformed_images (id, image_id, transform_url, qr_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		ti.ID,
		ti.ImageID,
		ti.TransformURL,
		ti.QRCodeURL,
	)
	return err
}

func (r *TransformedImageRepository) GetByID(ctx context.Context, id string) (models.TransformedImage, error) {
	const query = `SELECT ` + transformedColumns + ` FROM transformed_images WHERE id = $1`
	return scanTransformedImage(r.pool.QueryRow(ctx, query, id))
}

func (r *TransformedImageRepository) ListByImage(ctx context.Context, imageID string) ([]models.TransformedImage, error) {
	const query = `SELECT ` + transformedColumns + ` FROM transformed_images WHERE image_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.TransformedImage
	for rows.Next() {
		ti, err := scanTransformedImage(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, ti)
	}
	return results, rows.Err()
}

func (r *TransformedImageRepository) ExistsByURL(ctx context.Context, transformURL string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM transformed_images WHERE transform_url = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, transformURL).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TransformedImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM transformed_images WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransformedImageNotFound
	}
	return nil
}
