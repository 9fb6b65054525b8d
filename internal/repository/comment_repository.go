package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"photoshare/api/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `id, user_id, image_id, comment, created_at, updated_at`

func scanComment(row pgx.Row) (models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID,
		&comment.UserID,
		&comment.ImageID,
		&comment.Comment,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func scanComments(rows pgx.Rows) ([]models.Comment, error) {
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) error {
	const query = `
		INSERT INTO comments (id, user_id, image_id, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.UserID,
		comment.ImageID,
		comment.Comment,
	)
	return err
}

func (r *CommentRepository) List(ctx context.Context, imageID string) ([]models.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE image_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (models.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.pool.QueryRow(ctx, query, id))
}

// ListByImageAndUser returns the given user's comments on an image; image
// list/detail responses only show the caller their own comments.
func (r *CommentRepository) ListByImageAndUser(ctx context.Context, imageID string, userID string) ([]models.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE image_id = $1 AND user_id = $2 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, imageID, userID)
	if err != nil {
		return nil, err
	}
	return scanComments(rows)
}

func (r *CommentRepository) UpdateText(ctx context.Context, id string, text string) error {
	const query = `UPDATE comments SET comment = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, text)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
