package service

import (
	"context"
	"strings"
	"testing"
)

func TestCreateTagNormalizesName(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	tag, err := svc.Create(context.Background(), "  Sunset ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tag.Name != "sunset" {
		t.Fatalf("expected sunset, got %q", tag.Name)
	}
}

func TestCreateTagDuplicateConflicts(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	if _, err := svc.Create(context.Background(), "sunset"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), "SUNSET")
	wantServiceError(t, err, ErrorCodeConflict, "Tag already exists")
}

func TestCreateTagRejectsLongName(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	_, err := svc.Create(context.Background(), strings.Repeat("a", 26))
	wantServiceError(t, err, ErrorCodeUnprocessable, "Tag length should not exceed 25 characters")
}

func TestGetTagMissing(t *testing.T) {
	svc := NewTagService(newFakeTagStore())

	_, err := svc.Get(context.Background(), "ghost")
	wantServiceError(t, err, ErrorCodeNotFound, "Tag not found")
}

func TestUpdateTagToExistingNameConflicts(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	first, err := svc.Create(context.Background(), "cats")
	if err != nil {
		t.Fatalf("create cats: %v", err)
	}
	if _, err := svc.Create(context.Background(), "dogs"); err != nil {
		t.Fatalf("create dogs: %v", err)
	}

	_, err = svc.Update(context.Background(), first.ID, "dogs")
	wantServiceError(t, err, ErrorCodeConflict, "Tag already exists")
}

func TestDeleteTagReturnsDeletedRow(t *testing.T) {
	store := newFakeTagStore()
	svc := NewTagService(store)

	created, err := svc.Create(context.Background(), "temp")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tag, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if tag.Name != "temp" {
		t.Fatalf("unexpected tag %+v", tag)
	}
	if len(store.byID) != 0 {
		t.Fatalf("tag not removed")
	}
}
