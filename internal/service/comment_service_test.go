package service

import (
	"context"
	"strings"
	"testing"

	"photoshare/api/internal/models"
)

func newTestCommentService() (*CommentService, *fakeImageStore, *fakeCommentStore) {
	images := newFakeImageStore()
	comments := newFakeCommentStore()
	return NewCommentService(comments, images), images, comments
}

func TestCreateCommentOnMissingImage(t *testing.T) {
	svc, _, _ := newTestCommentService()

	_, err := svc.Create(context.Background(), models.User{ID: "u1"}, "ghost", "hi")
	wantServiceError(t, err, ErrorCodeNotFound, "Image not found")
}

func TestCreateCommentAllowedOnForeignImage(t *testing.T) {
	svc, images, _ := newTestCommentService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "owner"}

	comment, err := svc.Create(context.Background(), models.User{ID: "visitor"}, "img1", "nice shot")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.UserID != "visitor" || comment.Comment != "nice shot" {
		t.Fatalf("unexpected comment %+v", comment)
	}
}

func TestCreateCommentRejectsOverlongText(t *testing.T) {
	svc, images, _ := newTestCommentService()
	images.images["img1"] = models.Image{ID: "img1", UserID: "owner"}

	_, err := svc.Create(context.Background(), models.User{ID: "u1"}, "img1", strings.Repeat("x", 256))
	wantServiceError(t, err, ErrorCodeUnprocessable, "Comment should not exceed 255 characters")
}

func TestGetCommentMissing(t *testing.T) {
	svc, _, _ := newTestCommentService()

	_, err := svc.Get(context.Background(), "ghost")
	wantServiceError(t, err, ErrorCodeNotFound, "No such comment")
}

func TestUpdateForeignCommentHiddenFromUser(t *testing.T) {
	svc, _, comments := newTestCommentService()
	comments.comments["c1"] = models.Comment{ID: "c1", ImageID: "img1", UserID: "owner", Comment: "old"}

	_, err := svc.Update(context.Background(), models.User{ID: "intruder", Role: models.RoleUser}, "c1", "hacked")
	wantServiceError(t, err, ErrorCodeNotFound, "No such comment")
	if comments.comments["c1"].Comment != "old" {
		t.Fatalf("comment must stay unchanged")
	}
}

func TestUpdateForeignCommentAllowedToModerator(t *testing.T) {
	svc, _, comments := newTestCommentService()
	comments.comments["c1"] = models.Comment{ID: "c1", ImageID: "img1", UserID: "owner", Comment: "old"}

	comment, err := svc.Update(context.Background(), models.User{ID: "mod", Role: models.RoleModerator}, "c1", "moderated")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if comment.Comment != "moderated" {
		t.Fatalf("unexpected text %q", comment.Comment)
	}
}

func TestDeleteCommentReturnsDeletedRow(t *testing.T) {
	svc, _, comments := newTestCommentService()
	comments.comments["c1"] = models.Comment{ID: "c1", ImageID: "img1", UserID: "owner", Comment: "bye"}

	comment, err := svc.Delete(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if comment.Comment != "bye" {
		t.Fatalf("unexpected comment %+v", comment)
	}
	if len(comments.comments) != 0 {
		t.Fatalf("comment not removed")
	}
}
