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

// TagCatalogStore is the full tag repository surface used by tag management.
type TagCatalogStore interface {
	Create(ctx context.Context, tag models.Tag) error
	List(ctx context.Context, limit, offset int) ([]models.Tag, error)
	GetByID(ctx context.Context, id string) (models.Tag, error)
	GetByName(ctx context.Context, name string) (models.Tag, error)
	UpdateName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type TagService struct {
	tags TagCatalogStore
}

func NewTagService(tags TagCatalogStore) *TagService {
	return &TagService{tags: tags}
}

func normalizeTagName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", NewUnprocessableError("Tag name required")
	}
	if len(name) > maxTagLen {
		return "", NewUnprocessableError(fmt.Sprintf("Tag length should not exceed %d characters", maxTagLen))
	}
	return name, nil
}

func (s *TagService) Create(ctx context.Context, name string) (models.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return models.Tag{}, err
	}

	if _, err := s.tags.GetByName(ctx, name); err == nil {
		return models.Tag{}, NewConflictError("Tag already exists")
	} else if !errors.Is(err, repository.ErrTagNotFound) {
		return models.Tag{}, err
	}

	tag := models.Tag{ID: ids.New(), Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.tags.List(ctx, limit, offset)
}

func (s *TagService) Get(ctx context.Context, id string) (models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTagNotFound) {
		return models.Tag{}, NewNotFoundError("Tag not found")
	}
	return tag, err
}

func (s *TagService) Update(ctx context.Context, id, name string) (models.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return models.Tag{}, err
	}

	if existing, err := s.tags.GetByName(ctx, name); err == nil && existing.ID != id {
		return models.Tag{}, NewConflictError("Tag already exists")
	} else if err != nil && !errors.Is(err, repository.ErrTagNotFound) {
		return models.Tag{}, err
	}

	if err := s.tags.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return models.Tag{}, NewNotFoundError("Tag not found")
		}
		return models.Tag{}, err
	}
	return models.Tag{ID: id, Name: name}, nil
}

func (s *TagService) Delete(ctx context.Context, id string) (models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return models.Tag{}, NewNotFoundError("Tag not found")
		}
		return models.Tag{}, err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return models.Tag{}, NewNotFoundError("Tag not found")
		}
		return models.Tag{}, err
	}
	return tag, nil
}
