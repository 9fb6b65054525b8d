package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

const imageColumns = `id, user_id, url, public_name, description, created_at, updated_at`

func scanImage(row pgx.Row) (models.Image, error) {
	var image models.Image
	err := row.Scan(
		&image.ID,
		&image.UserID,
		&image.URL,
		&image.PublicName,
		&image.Description,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

func scanImages(rows pgx.Rows) ([]models.Image, error) {
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *ImageRepository) Create(ctx context.Context, image models.Image) error {
	const query = `
		INSERT INTO images (
			id, user_id, url, public_name, description, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query,
		image.ID,
		image.UserID,
		image.URL,
		image.PublicName,
		image.Description,
	)
	return err
}

// GetByID fetches without an ownership filter; callers with role "user" use
// GetOwnedByID so an inaccessible row is indistinguishable from a missing one.
func (r *ImageRepository) GetByID(ctx context.Context, id string) (models.Image, error) {
	const query = `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	return scanImage(r.pool.QueryRow(ctx, query, id))
}

func (r *ImageRepository) GetOwnedByID(ctx context.Context, id string, userID string) (models.Image, error) {
	const query = `SELECT ` + imageColumns + ` FROM images WHERE id = $1 AND user_id = $2`
	return scanImage(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *ImageRepository) List(ctx context.Context) ([]models.Image, error) {
	const query = `SELECT ` + imageColumns + ` FROM images ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) ListByUser(ctx context.Context, userID string) ([]models.Image, error) {
	const query = `SELECT ` + imageColumns + ` FROM images WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) ListByUserPaged(ctx context.Context, userID string, newestFirst bool, limit, offset int) ([]models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if !newestFirst {
		query = `SELECT ` + imageColumns + ` FROM images WHERE user_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	}
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) UpdateDescription(ctx context.Context, id string, description string) error {
	const query = `UPDATE images SET description = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, description)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM images WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

// ReplaceTags rewires the image's tag links. Unlink and relink are separate
// statements; tag rows themselves are never deleted here.
func (r *ImageRepository) ReplaceTags(ctx context.Context, imageID string, tagIDs []string) error {
	const unlink = `DELETE FROM image_m2m_tag WHERE image_id = $1`
	if _, err := r.pool.Exec(ctx, unlink, imageID); err != nil {
		return err
	}

	const link = `INSERT INTO image_m2m_tag (image_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tagID := range tagIDs {
		if _, err := r.pool.Exec(ctx, link, imageID, tagID); err != nil {
			return err
		}
	}

	const touch = `UPDATE images SET updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, touch, imageID)
	return err
}

func (r *ImageRepository) ListTags(ctx context.Context, imageID string) ([]models.Tag, error) {
	const query = `
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN image_m2m_tag m ON m.tag_id = t.id
		WHERE m.image_id = $1
		ORDER BY t.name
	`
	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *ImageRepository) SearchByTag(ctx context.Context, tagName string, newestFirst bool, limit, offset int) ([]models.Image, error) {
	query := `
		SELECT i.id, i.user_id, i.url, i.public_name, i.description, i.created_at, i.updated_at
		FROM images i
		JOIN image_m2m_tag m ON m.image_id = i.id
		JOIN tags t ON t.id = m.tag_id
		WHERE t.name = $1
		ORDER BY i.created_at DESC
		LIMIT $2 OFFSET $3
	`
	if !newestFirst {
		query = `
		SELECT i.id, i.user_id, i.url, i.public_name, i.description, i.created_at, i.updated_at
		FROM images i
		JOIN image_m2m_tag m ON m.image_id = i.id
		JOIN tags t ON t.id = m.tag_id
		WHERE t.name = $1
		ORDER BY i.created_at ASC
		LIMIT $2 OFFSET $3
	`
	}
	rows, err := r.pool.Query(ctx, query, tagName, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanImages(rows)
}

func (r *ImageRepository) ExistsPublicName(ctx context.Context, publicName string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM images WHERE public_name = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, publicName).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
