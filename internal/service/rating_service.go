package service

import (
	"context"
	"errors"

	"photoshare/api/internal/ids"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
)

type RatingStore interface {
	Create(ctx context.Context, rating models.Rating) error
	GetByID(ctx context.Context, id string) (models.Rating, error)
	GetByUserAndImage(ctx context.Context, userID, imageID string) (models.Rating, error)
	AverageForImage(ctx context.Context, imageID string) (float64, error)
	UpdateStars(ctx context.Context, id string, stars int) error
	Delete(ctx context.Context, id string) error
}

type RatingImageStore interface {
	GetByID(ctx context.Context, id string) (models.Image, error)
}

type RatingService struct {
	ratings RatingStore
	images  RatingImageStore
}

func NewRatingService(ratings RatingStore, images RatingImageStore) *RatingService {
	return &RatingService{ratings: ratings, images: images}
}

// Create records a star rating. Rating your own image or rating the same
// image twice is rejected; the rejected attempt leaves no row behind.
func (s *RatingService) Create(ctx context.Context, user models.User, imageID string, stars int) (models.Rating, error) {
	if stars < models.OneStar || stars > models.FiveStars {
		return models.Rating{}, NewUnprocessableError("Exactly one star flag must be set")
	}

	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Rating{}, NewNotFoundError("Image not found")
		}
		return models.Rating{}, err
	}
	if img.UserID == user.ID {
		return models.Rating{}, NewValidationError("You can't rate your own image or rate it twice")
	}
	if _, err := s.ratings.GetByUserAndImage(ctx, user.ID, imageID); err == nil {
		return models.Rating{}, NewValidationError("You can't rate your own image or rate it twice")
	} else if !errors.Is(err, repository.ErrRatingNotFound) {
		return models.Rating{}, err
	}

	rating := models.Rating{
		ID:      ids.New(),
		UserID:  user.ID,
		ImageID: imageID,
		Stars:   stars,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return models.Rating{}, err
	}
	return rating, nil
}

// AverageForImage returns the mean star value across all ratings, or 0 when
// the image has none.
func (s *RatingService) AverageForImage(ctx context.Context, imageID string) (float64, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return 0, NewNotFoundError("Image not found")
		}
		return 0, err
	}
	return s.ratings.AverageForImage(ctx, imageID)
}

func (s *RatingService) Get(ctx context.Context, id string) (models.Rating, error) {
	rating, err := s.ratings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRatingNotFound) {
		return models.Rating{}, NewNotFoundError("Rating not found")
	}
	return rating, err
}

// Update changes the star value of an existing rating. Regular users may
// only touch their own ratings.
func (s *RatingService) Update(ctx context.Context, user models.User, id string, stars int) (models.Rating, error) {
	if stars < models.OneStar || stars > models.FiveStars {
		return models.Rating{}, NewUnprocessableError("Exactly one star flag must be set")
	}

	rating, err := s.ratings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return models.Rating{}, NewNotFoundError("Rating not found")
		}
		return models.Rating{}, err
	}
	if !user.Role.CanModerate() && rating.UserID != user.ID {
		return models.Rating{}, NewNotFoundError("Rating not found")
	}

	if err := s.ratings.UpdateStars(ctx, id, stars); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return models.Rating{}, NewNotFoundError("Rating not found")
		}
		return models.Rating{}, err
	}
	rating.Stars = stars
	return rating, nil
}

// Delete removes a rating. Route guards restrict this to moderators and the
// admin.
func (s *RatingService) Delete(ctx context.Context, id string) (models.Rating, error) {
	rating, err := s.ratings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return models.Rating{}, NewNotFoundError("Rating not found")
		}
		return models.Rating{}, err
	}
	if err := s.ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return models.Rating{}, NewNotFoundError("Rating not found")
		}
		return models.Rating{}, err
	}
	return rating, nil
}
