package service

import (
	"context"
	"errors"

	"photoshare/api/internal/ids"
	"photoshare/api/internal/media"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
)

type TransformedImageStore interface {
	Create(ctx context.Context, ti models.TransformedImage) error
	GetByID(ctx context.Context, id string) (models.TransformedImage, error)
	ListByImage(ctx context.Context, imageID string) ([]models.TransformedImage, error)
	ExistsByURL(ctx context.Context, transformURL string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type TransformImageStore interface {
	GetByID(ctx context.Context, id string) (models.Image, error)
	GetOwnedByID(ctx context.Context, id, userID string) (models.Image, error)
}

type TransformService struct {
	transformed TransformedImageStore
	images      TransformImageStore
	transformer *media.Transformer
}

func NewTransformService(transformed TransformedImageStore, images TransformImageStore, transformer *media.Transformer) *TransformService {
	return &TransformService{
		transformed: transformed,
		images:      images,
		transformer: transformer,
	}
}

func (s *TransformService) fetchSource(ctx context.Context, user models.User, imageID string) (models.Image, error) {
	var (
		img models.Image
		err error
	)
	if user.Role == models.RoleAdmin {
		img, err = s.images.GetByID(ctx, imageID)
	} else {
		img, err = s.images.GetOwnedByID(ctx, imageID, user.ID)
	}
	if errors.Is(err, repository.ErrImageNotFound) {
		return models.Image{}, NewNotFoundError("Image not found")
	}
	return img, err
}

// Create derives a transformed rendition of one of the caller's images and a
// QR code pointing at it. The same transformation of the same image is only
// recorded once.
func (s *TransformService) Create(ctx context.Context, user models.User, imageID string, tr media.Transform) (models.TransformedImage, error) {
	if tr.Width <= 0 || tr.Height <= 0 {
		return models.TransformedImage{}, NewUnprocessableError("Width and height must be positive")
	}
	if !media.IsValidCrop(tr.Crop) {
		return models.TransformedImage{}, NewUnprocessableError("Invalid crop mode")
	}

	img, err := s.fetchSource(ctx, user, imageID)
	if err != nil {
		return models.TransformedImage{}, err
	}

	transformURL := s.transformer.TransformURL(img.URL, tr)
	exists, err := s.transformed.ExistsByURL(ctx, transformURL)
	if err != nil {
		return models.TransformedImage{}, err
	}
	if exists {
		return models.TransformedImage{}, NewConflictError("Transformed image already exists")
	}

	ti := models.TransformedImage{
		ID:           ids.New(),
		ImageID:      img.ID,
		TransformURL: transformURL,
		QRCodeURL:    s.transformer.QRCodeURL(transformURL),
	}
	if err := s.transformed.Create(ctx, ti); err != nil {
		return models.TransformedImage{}, err
	}
	return ti, nil
}

// ListByImage returns the transformed renditions of an image the caller may
// see. An image with no renditions reports not found.
func (s *TransformService) ListByImage(ctx context.Context, user models.User, imageID string) ([]models.TransformedImage, error) {
	var (
		img models.Image
		err error
	)
	if user.Role.CanModerate() {
		img, err = s.images.GetByID(ctx, imageID)
	} else {
		img, err = s.images.GetOwnedByID(ctx, imageID, user.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, NewNotFoundError("Image not found")
		}
		return nil, err
	}

	list, err := s.transformed.ListByImage(ctx, img.ID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, NewNotFoundError("Picture with requested parameters not found")
	}
	return list, nil
}

func (s *TransformService) fetchVisible(ctx context.Context, user models.User, id string) (models.TransformedImage, error) {
	ti, err := s.transformed.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransformedImageNotFound) {
			return models.TransformedImage{}, NewNotFoundError("Picture with requested parameters not found")
		}
		return models.TransformedImage{}, err
	}
	// Visibility follows the source image.
	if user.Role.CanModerate() {
		if _, err := s.images.GetByID(ctx, ti.ImageID); err == nil {
			return ti, nil
		}
	} else if _, err := s.images.GetOwnedByID(ctx, ti.ImageID, user.ID); err == nil {
		return ti, nil
	}
	return models.TransformedImage{}, NewNotFoundError("Picture with requested parameters not found")
}

// QRCode returns the QR code URL of a transformed rendition.
func (s *TransformService) QRCode(ctx context.Context, user models.User, id string) (string, error) {
	ti, err := s.fetchVisible(ctx, user, id)
	if err != nil {
		return "", err
	}
	return ti.QRCodeURL, nil
}

// Delete removes a transformed rendition. Only the source image's owner or
// the admin may delete it.
func (s *TransformService) Delete(ctx context.Context, user models.User, id string) (models.TransformedImage, error) {
	ti, err := s.transformed.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransformedImageNotFound) {
			return models.TransformedImage{}, NewNotFoundError("Picture with requested parameters not found")
		}
		return models.TransformedImage{}, err
	}

	if _, err := s.fetchSource(ctx, user, ti.ImageID); err != nil {
		return models.TransformedImage{}, NewNotFoundError("Picture with requested parameters not found")
	}

	if err := s.transformed.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTransformedImageNotFound) {
			return models.TransformedImage{}, NewNotFoundError("Picture with requested parameters not found")
		}
		return models.TransformedImage{}, err
	}
	return ti, nil
}
