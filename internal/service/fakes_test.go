package service

import (
	"context"
	"sort"

	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
)

// In-memory stores backing the service tests.

type fakeImageStore struct {
	images map[string]models.Image
	tags   map[string][]models.Tag
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{
		images: make(map[string]models.Image),
		tags:   make(map[string][]models.Tag),
	}
}

func (f *fakeImageStore) Create(_ context.Context, img models.Image) error {
	f.images[img.ID] = img
	return nil
}

func (f *fakeImageStore) GetByID(_ context.Context, id string) (models.Image, error) {
	img, ok := f.images[id]
	if !ok {
		return models.Image{}, repository.ErrImageNotFound
	}
	return img, nil
}

func (f *fakeImageStore) GetOwnedByID(_ context.Context, id, userID string) (models.Image, error) {
	img, ok := f.images[id]
	if !ok || img.UserID != userID {
		return models.Image{}, repository.ErrImageNotFound
	}
	return img, nil
}

func (f *fakeImageStore) sorted() []models.Image {
	out := make([]models.Image, 0, len(f.images))
	for _, img := range f.images {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeImageStore) List(_ context.Context) ([]models.Image, error) {
	return f.sorted(), nil
}

func (f *fakeImageStore) ListByUser(_ context.Context, userID string) ([]models.Image, error) {
	var out []models.Image
	for _, img := range f.sorted() {
		if img.UserID == userID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImageStore) UpdateDescription(_ context.Context, id, description string) error {
	img, ok := f.images[id]
	if !ok {
		return repository.ErrImageNotFound
	}
	img.Description = description
	f.images[id] = img
	return nil
}

func (f *fakeImageStore) Delete(_ context.Context, id string) error {
	if _, ok := f.images[id]; !ok {
		return repository.ErrImageNotFound
	}
	delete(f.images, id)
	delete(f.tags, id)
	return nil
}

func (f *fakeImageStore) ReplaceTags(_ context.Context, imageID string, tagIDs []string) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	f.tags[imageID] = tags
	return nil
}

func (f *fakeImageStore) ListTags(_ context.Context, imageID string) ([]models.Tag, error) {
	return f.tags[imageID], nil
}

func (f *fakeImageStore) ExistsPublicName(_ context.Context, publicName string) (bool, error) {
	for _, img := range f.images {
		if img.PublicName == publicName {
			return true, nil
		}
	}
	return false, nil
}

type fakeTagStore struct {
	byName map[string]models.Tag
	byID   map[string]models.Tag
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{
		byName: make(map[string]models.Tag),
		byID:   make(map[string]models.Tag),
	}
}

func (f *fakeTagStore) Create(_ context.Context, tag models.Tag) error {
	f.byName[tag.Name] = tag
	f.byID[tag.ID] = tag
	return nil
}

func (f *fakeTagStore) GetByName(_ context.Context, name string) (models.Tag, error) {
	tag, ok := f.byName[name]
	if !ok {
		return models.Tag{}, repository.ErrTagNotFound
	}
	return tag, nil
}

func (f *fakeTagStore) GetByID(_ context.Context, id string) (models.Tag, error) {
	tag, ok := f.byID[id]
	if !ok {
		return models.Tag{}, repository.ErrTagNotFound
	}
	return tag, nil
}

func (f *fakeTagStore) List(_ context.Context, limit, offset int) ([]models.Tag, error) {
	names := make([]string, 0, len(f.byName))
	for name := range f.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	var out []models.Tag
	for i, name := range names {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.byName[name])
	}
	return out, nil
}

func (f *fakeTagStore) UpdateName(_ context.Context, id, name string) error {
	tag, ok := f.byID[id]
	if !ok {
		return repository.ErrTagNotFound
	}
	delete(f.byName, tag.Name)
	tag.Name = name
	f.byID[id] = tag
	f.byName[name] = tag
	return nil
}

func (f *fakeTagStore) Delete(_ context.Context, id string) error {
	tag, ok := f.byID[id]
	if !ok {
		return repository.ErrTagNotFound
	}
	delete(f.byID, id)
	delete(f.byName, tag.Name)
	return nil
}

type fakeRatingStore struct {
	ratings map[string]models.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[string]models.Rating)}
}

func (f *fakeRatingStore) Create(_ context.Context, rating models.Rating) error {
	f.ratings[rating.ID] = rating
	return nil
}

func (f *fakeRatingStore) GetByID(_ context.Context, id string) (models.Rating, error) {
	rating, ok := f.ratings[id]
	if !ok {
		return models.Rating{}, repository.ErrRatingNotFound
	}
	return rating, nil
}

func (f *fakeRatingStore) GetByUserAndImage(_ context.Context, userID, imageID string) (models.Rating, error) {
	for _, rating := range f.ratings {
		if rating.UserID == userID && rating.ImageID == imageID {
			return rating, nil
		}
	}
	return models.Rating{}, repository.ErrRatingNotFound
}

func (f *fakeRatingStore) AverageForImage(_ context.Context, imageID string) (float64, error) {
	sum, count := 0, 0
	for _, rating := range f.ratings {
		if rating.ImageID == imageID {
			sum += rating.Stars
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeRatingStore) UpdateStars(_ context.Context, id string, stars int) error {
	rating, ok := f.ratings[id]
	if !ok {
		return repository.ErrRatingNotFound
	}
	rating.Stars = stars
	f.ratings[id] = rating
	return nil
}

func (f *fakeRatingStore) Delete(_ context.Context, id string) error {
	if _, ok := f.ratings[id]; !ok {
		return repository.ErrRatingNotFound
	}
	delete(f.ratings, id)
	return nil
}

type fakeCommentStore struct {
	comments map[string]models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[string]models.Comment)}
}

func (f *fakeCommentStore) Create(_ context.Context, comment models.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentStore) List(_ context.Context, imageID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.ImageID == imageID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id string) (models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return models.Comment{}, repository.ErrCommentNotFound
	}
	return comment, nil
}

func (f *fakeCommentStore) ListByImageAndUser(_ context.Context, imageID, userID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.ImageID == imageID && comment.UserID == userID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentStore) UpdateText(_ context.Context, id, text string) error {
	comment, ok := f.comments[id]
	if !ok {
		return repository.ErrCommentNotFound
	}
	comment.Comment = text
	f.comments[id] = comment
	return nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) PutOriginal(_ context.Context, objectKey string, data []byte, _ string) (string, error) {
	f.objects[objectKey] = data
	return "https://cdn.example/" + objectKey, nil
}

type fakeTransformedStore struct {
	items map[string]models.TransformedImage
}

func newFakeTransformedStore() *fakeTransformedStore {
	return &fakeTransformedStore{items: make(map[string]models.TransformedImage)}
}

func (f *fakeTransformedStore) Create(_ context.Context, ti models.TransformedImage) error {
	f.items[ti.ID] = ti
	return nil
}

func (f *fakeTransformedStore) GetByID(_ context.Context, id string) (models.TransformedImage, error) {
	ti, ok := f.items[id]
	if !ok {
		return models.TransformedImage{}, repository.ErrTransformedImageNotFound
	}
	return ti, nil
}

func (f *fakeTransformedStore) ListByImage(_ context.Context, imageID string) ([]models.TransformedImage, error) {
	var out []models.TransformedImage
	for _, ti := range f.items {
		if ti.ImageID == imageID {
			out = append(out, ti)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTransformedStore) ExistsByURL(_ context.Context, transformURL string) (bool, error) {
	for _, ti := range f.items {
		if ti.TransformURL == transformURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransformedStore) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrTransformedImageNotFound
	}
	delete(f.items, id)
	return nil
}
