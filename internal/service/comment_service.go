package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photoshare/api/internal/ids"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
)

const maxCommentLen = 255

type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	List(ctx context.Context, imageID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

type CommentImageStore interface {
	GetByID(ctx context.Context, id string) (models.Image, error)
}

type CommentService struct {
	comments CommentStore
	images   CommentImageStore
}

func NewCommentService(comments CommentStore, images CommentImageStore) *CommentService {
	return &CommentService{comments: comments, images: images}
}

func validateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewUnprocessableError("Comment text required")
	}
	if len(text) > maxCommentLen {
		return "", NewUnprocessableError(fmt.Sprintf("Comment should not exceed %d characters", maxCommentLen))
	}
	return text, nil
}

// Create leaves a comment on an image. Any authenticated user may comment on
// any image, including their own.
func (s *CommentService) Create(ctx context.Context, user models.User, imageID, text string) (models.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return models.Comment{}, err
	}

	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Comment{}, NewNotFoundError("Image not found")
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:      ids.New(),
		UserID:  user.ID,
		ImageID: imageID,
		Comment: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) List(ctx context.Context, imageID string) ([]models.Comment, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, NewNotFoundError("Image not found")
		}
		return nil, err
	}
	return s.comments.List(ctx, imageID)
}

func (s *CommentService) Get(ctx context.Context, id string) (models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCommentNotFound) {
		return models.Comment{}, NewNotFoundError("No such comment")
	}
	return comment, err
}

// Update edits a comment's text. Regular users may only edit their own
// comments; someone else's comment is reported as missing, not forbidden.
func (s *CommentService) Update(ctx context.Context, user models.User, id, text string) (models.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return models.Comment{}, NewNotFoundError("No such comment")
		}
		return models.Comment{}, err
	}
	if !user.Role.CanModerate() && comment.UserID != user.ID {
		return models.Comment{}, NewNotFoundError("No such comment")
	}

	if err := s.comments.UpdateText(ctx, id, text); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return models.Comment{}, NewNotFoundError("No such comment")
		}
		return models.Comment{}, err
	}
	comment.Comment = text
	return comment, nil
}

// Delete removes a comment. Route guards restrict this to moderators and the
// admin.
func (s *CommentService) Delete(ctx context.Context, id string) (models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return models.Comment{}, NewNotFoundError("No such comment")
		}
		return models.Comment{}, err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return models.Comment{}, NewNotFoundError("No such comment")
		}
		return models.Comment{}, err
	}
	return comment, nil
}
