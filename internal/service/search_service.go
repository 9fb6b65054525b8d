package service

import (
	"context"
	"strings"

	"photoshare/api/internal/models"
)

// Sort orders accepted by search endpoints: "d" for newest first, "-d" for
// oldest first.
const (
	OrderNewestFirst = "d"
	OrderOldestFirst = "-d"
)

type SearchImageStore interface {
	SearchByTag(ctx context.Context, tagName string, newestFirst bool, limit, offset int) ([]models.Image, error)
	ListByUserPaged(ctx context.Context, userID string, newestFirst bool, limit, offset int) ([]models.Image, error)
}

type SearchService struct {
	images  SearchImageStore
	ratings ImageRatingStore
}

func NewSearchService(images SearchImageStore, ratings ImageRatingStore) *SearchService {
	return &SearchService{images: images, ratings: ratings}
}

// SearchResult is an image with its average rating attached.
type SearchResult struct {
	Image   models.Image
	Ratings float64
}

func parseOrder(order string) (newestFirst bool, err error) {
	switch order {
	case OrderNewestFirst:
		return true, nil
	case OrderOldestFirst:
		return false, nil
	default:
		return false, NewValidationError("parameter order must be 'd' or '-d'")
	}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ByTag finds images carrying the given tag, for any authenticated user.
func (s *SearchService) ByTag(ctx context.Context, tagName, order string, limit, offset int) ([]SearchResult, error) {
	newestFirst, err := parseOrder(order)
	if err != nil {
		return nil, err
	}
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	limit, offset = clampPage(limit, offset)

	imgs, err := s.images.SearchByTag(ctx, tagName, newestFirst, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, NewNotFoundError("Images not found for this tag")
	}
	return s.attachRatings(ctx, imgs)
}

// ByUser lists another user's images. Route guards restrict this to
// moderators and the admin.
func (s *SearchService) ByUser(ctx context.Context, userID, order string, limit, offset int) ([]SearchResult, error) {
	newestFirst, err := parseOrder(order)
	if err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	imgs, err := s.images.ListByUserPaged(ctx, userID, newestFirst, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, NewNotFoundError("Images not found for this user")
	}
	return s.attachRatings(ctx, imgs)
}

func (s *SearchService) attachRatings(ctx context.Context, imgs []models.Image) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(imgs))
	for _, img := range imgs {
		avg, err := s.ratings.AverageForImage(ctx, img.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{Image: img, Ratings: avg})
	}
	return results, nil
}
