package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrTagNotFound = errors.New("tag not found")

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func scanTag(row pgx.Row) (models.Tag, error) {
	var tag models.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tag{}, ErrTagNotFound
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func (r *TagRepository) Create(ctx context.Context, tag models.Tag) error {
	const query = `INSERT INTO tags (id, name, created_at) VALUES ($1, $2, NOW())`
	_, err := r.pool.Exec(ctx, query, tag.ID, tag.Name)
	return err
}

func (r *TagRepository) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags WHERE id = $1`
	return scanTag(r.pool.QueryRow(ctx, query, id))
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (models.Tag, error) {
	const query = `SELECT id, name, created_at FROM tags WHERE name = $1`
	return scanTag(r.pool.QueryRow(ctx, query, name))
}

func (r *TagRepository) UpdateName(ctx context.Context, id string, name string) error {
	const query = `UPDATE tags SET name = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tags WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}
