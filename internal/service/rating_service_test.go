package service

import (
	"context"
	"testing"

	"photoshare/api/internal/models"
)

func newTestRatingService() (*RatingService, *fakeImageStore, *fakeRatingStore) {
	images := newFakeImageStore()
	ratings := newFakeRatingStore()
	return NewRatingService(ratings, images), images, ratings
}

func TestCreateRatingRejectsOwnImage(t *testing.T) {
	svc, images, ratings := newTestRatingService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "u1"}

	_, err := svc.Create(context.Background(), models.User{ID: "u1", Role: models.RoleUser}, "img1", models.FiveStars)
	wantServiceError(t, err, ErrorCodeValidation, "You can't rate your own image or rate it twice")
	if len(ratings.ratings) != 0 {
		t.Fatalf("rejected rating must not be stored")
	}
}

func TestCreateRatingRejectsSecondRating(t *testing.T) {
	svc, images, ratings := newTestRatingService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "owner"}

	if _, err := svc.Create(context.Background(), models.User{ID: "u1"}, "img1", models.ThreeStars); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	_, err := svc.Create(context.Background(), models.User{ID: "u1"}, "img1", models.FourStars)
	wantServiceError(t, err, ErrorCodeValidation, "You can't rate your own image or rate it twice")
	if len(ratings.ratings) != 1 {
		t.Fatalf("expected the single original rating, got %d", len(ratings.ratings))
	}
}

func TestCreateRatingMissingImage(t *testing.T) {
	svc, _, _ := newTestRatingService()

	_, err := svc.Create(context.Background(), models.User{ID: "u1"}, "ghost", models.OneStar)
	wantServiceError(t, err, ErrorCodeNotFound, "Image not found")
}

func TestAverageForImageZeroWithoutRatings(t *testing.T) {
	svc, images, _ := newTestRatingService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "owner"}

	avg, err := svc.AverageForImage(context.Background(), "img1")
	if err != nil {
		t.Fatalf("AverageForImage: %v", err)
	}
	if avg != 0 {
		t.Fatalf("expected 0, got %v", avg)
	}
}

func TestAverageForImageMean(t *testing.T) {
	svc, images, ratings := newTestRatingService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "owner"}
	ratings.ratings["r1"] = models.Rating{ID: "r1", ImageID: "img1", UserID: "a", Stars: models.OneStar}
	ratings.ratings["r2"] = models.Rating{ID: "r2", ImageID: "img1", UserID: "b", Stars: models.FourStars}

	avg, err := svc.AverageForImage(context.Background(), "img1")
	if err != nil {
		t.Fatalf("AverageForImage: %v", err)
	}
	if avg != 2.5 {
		t.Fatalf("expected 2.5, got %v", avg)
	}
}

func TestUpdateRatingForeignRatingHiddenFromUser(t *testing.T) {
	svc, _, ratings := newTestRatingService()
	ratings.ratings["r1"] = models.Rating{ID: "r1", ImageID: "img1", UserID: "owner", Stars: 3}

	_, err := svc.Update(context.Background(), models.User{ID: "intruder", Role: models.RoleUser}, "r1", models.FiveStars)
	wantServiceError(t, err, ErrorCodeNotFound, "Rating not found")
}

func TestDeleteRatingReturnsDeletedRow(t *testing.T) {
	svc, _, ratings := newTestRatingService()
	ratings.ratings["r1"] = models.Rating{ID: "r1", ImageID: "img1", UserID: "owner", Stars: 3}

	rating, err := svc.Delete(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rating.ID != "r1" || rating.Stars != 3 {
		t.Fatalf("unexpected rating %+v", rating)
	}
	if len(ratings.ratings) != 0 {
		t.Fatalf("rating not removed")
	}
}

func TestGetRatingMissing(t *testing.T) {
	svc, _, _ := newTestRatingService()

	_, err := svc.Get(context.Background(), "ghost")
	wantServiceError(t, err, ErrorCodeNotFound, "Rating not found")
}
