package service

import (
	"context"
	"testing"

	"photoshare/api/internal/models"
)

type fakeSearchStore struct {
	byTag  map[string][]models.Image
	byUser map[string][]models.Image
}

func (f *fakeSearchStore) SearchByTag(_ context.Context, tagName string, newestFirst bool, limit, offset int) ([]models.Image, error) {
	return page(f.byTag[tagName], newestFirst, limit, offset), nil
}

func (f *fakeSearchStore) ListByUserPaged(_ context.Context, userID string, newestFirst bool, limit, offset int) ([]models.Image, error) {
	return page(f.byUser[userID], newestFirst, limit, offset), nil
}

func page(imgs []models.Image, newestFirst bool, limit, offset int) []models.Image {
	ordered := make([]models.Image, len(imgs))
	copy(ordered, imgs)
	if newestFirst {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	if offset >= len(ordered) {
		return nil
	}
	ordered = ordered[offset:]
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

func newTestSearchService() (*SearchService, *fakeSearchStore) {
	store := &fakeSearchStore{
		byTag:  make(map[string][]models.Image),
		byUser: make(map[string][]models.Image),
	}
	return NewSearchService(store, newFakeRatingStore()), store
}

func TestSearchByTagRejectsUnknownOrder(t *testing.T) {
	svc, _ := newTestSearchService()

	_, err := svc.ByTag(context.Background(), "cats", "up", 10, 0)
	wantServiceError(t, err, ErrorCodeValidation, "parameter order must be 'd' or '-d'")
}

func TestSearchByTagEmptyReportsNotFound(t *testing.T) {
	svc, _ := newTestSearchService()

	_, err := svc.ByTag(context.Background(), "cats", OrderNewestFirst, 10, 0)
	wantServiceError(t, err, ErrorCodeNotFound, "Images not found for this tag")
}

func TestSearchByTagNormalizesTagName(t *testing.T) {
	svc, store := newTestSearchService()
	store.byTag["cats"] = []models.Image{{ID: "a"}, {ID: "b"}}

	results, err := svc.ByTag(context.Background(), "  CATS ", OrderNewestFirst, 10, 0)
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if len(results) != 2 || results[0].Image.ID != "b" {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestSearchByTagOldestFirst(t *testing.T) {
	svc, store := newTestSearchService()
	store.byTag["cats"] = []models.Image{{ID: "a"}, {ID: "b"}}

	results, err := svc.ByTag(context.Background(), "cats", OrderOldestFirst, 10, 0)
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if results[0].Image.ID != "a" {
		t.Fatalf("expected oldest first, got %v", results)
	}
}

func TestSearchByUserEmptyReportsNotFound(t *testing.T) {
	svc, _ := newTestSearchService()

	_, err := svc.ByUser(context.Background(), "ghost", OrderNewestFirst, 10, 0)
	wantServiceError(t, err, ErrorCodeNotFound, "Images not found for this user")
}
