package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"photoshare/api/internal/ids"
	"photoshare/api/internal/media"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
)

const (
	maxDescriptionLen = 500
	maxTagLen         = 25
	maxTagsPerImage   = 5
)

// ImageStore is the image repository surface the service uses.
type ImageStore interface {
	Create(ctx context.Context, img models.Image) error
	GetByID(ctx context.Context, id string) (models.Image, error)
	GetOwnedByID(ctx context.Context, id, userID string) (models.Image, error)
	List(ctx context.Context) ([]models.Image, error)
	ListByUser(ctx context.Context, userID string) ([]models.Image, error)
	UpdateDescription(ctx context.Context, id, description string) error
	Delete(ctx context.Context, id string) error
	ReplaceTags(ctx context.Context, imageID string, tagIDs []string) error
	ListTags(ctx context.Context, imageID string) ([]models.Tag, error)
	ExistsPublicName(ctx context.Context, publicName string) (bool, error)
}

type TagStore interface {
	Create(ctx context.Context, tag models.Tag) error
	GetByName(ctx context.Context, name string) (models.Tag, error)
}

type ImageRatingStore interface {
	AverageForImage(ctx context.Context, imageID string) (float64, error)
}

type ImageCommentStore interface {
	ListByImageAndUser(ctx context.Context, imageID, userID string) ([]models.Comment, error)
}

// MediaStorage persists the uploaded original and returns its public URL.
type MediaStorage interface {
	PutOriginal(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

type ImageService struct {
	images   ImageStore
	tags     TagStore
	ratings  ImageRatingStore
	comments ImageCommentStore
	storage  MediaStorage
	log      zerolog.Logger
}

func NewImageService(images ImageStore, tags TagStore, ratings ImageRatingStore, comments ImageCommentStore, storage MediaStorage, log zerolog.Logger) *ImageService {
	return &ImageService{
		images:   images,
		tags:     tags,
		ratings:  ratings,
		comments: comments,
		storage:  storage,
		log:      log,
	}
}

// ImageView is an image together with its average rating and the comments
// the calling user left on it.
type ImageView struct {
	Image    models.Image
	Ratings  float64
	Comments []models.Comment
}

// NormalizeTags splits comma separated tag strings, trims, lowercases and
// deduplicates them while preserving first-seen order. Tags over the length
// limit are rejected; tags beyond the per-image limit are dropped and
// reported through the returned warning.
func NormalizeTags(raw []string) (names []string, warning string, err error) {
	seen := make(map[string]struct{})
	for _, chunk := range raw {
		for _, part := range strings.Split(chunk, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			if len(name) > maxTagLen {
				return nil, "", NewUnprocessableError(fmt.Sprintf("Tag length should not exceed %d characters", maxTagLen))
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	if len(names) > maxTagsPerImage {
		names = names[:maxTagsPerImage]
		warning = fmt.Sprintf("No more than %d tags are allowed", maxTagsPerImage)
	}
	return names, warning, nil
}

type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Description string
	Tags        []string
}

type UploadResult struct {
	Image   models.Image
	Warning string
}

func (s *ImageService) Upload(ctx context.Context, user models.User, input UploadInput) (UploadResult, error) {
	if len(input.Data) == 0 {
		return UploadResult{}, NewValidationError("Empty file")
	}
	if len(input.Description) > maxDescriptionLen {
		return UploadResult{}, NewUnprocessableError(fmt.Sprintf("Description should not exceed %d characters", maxDescriptionLen))
	}

	sniffed, err := media.Sniff(input.Data)
	if err != nil {
		return UploadResult{}, NewUnprocessableError("Unsupported image format")
	}
	if declared := input.ContentType; declared != "" && declared != sniffed.MIME {
		return UploadResult{}, NewUnprocessableError("Unsupported image format")
	}

	names, warning, err := NormalizeTags(input.Tags)
	if err != nil {
		return UploadResult{}, err
	}

	publicName, err := s.uniquePublicName(ctx, input.Filename)
	if err != nil {
		return UploadResult{}, err
	}

	imageID := ids.New()
	objectKey := fmt.Sprintf("%s/%s.%s", time.Now().UTC().Format("2006/01/02"), imageID, sniffed.Format)
	url, err := s.storage.PutOriginal(ctx, objectKey, input.Data, sniffed.MIME)
	if err != nil {
		return UploadResult{}, err
	}

	img := models.Image{
		ID:          imageID,
		UserID:      user.ID,
		URL:         url,
		PublicName:  publicName,
		Description: input.Description,
	}
	if err := s.images.Create(ctx, img); err != nil {
		return UploadResult{}, err
	}

	if err := s.applyTags(ctx, imageID, names); err != nil {
		return UploadResult{}, err
	}
	img.Tags, err = s.images.ListTags(ctx, imageID)
	if err != nil {
		return UploadResult{}, err
	}

	s.log.Info().Str("image_id", imageID).Str("user_id", user.ID).Str("format", string(sniffed.Format)).Msg("image uploaded")
	return UploadResult{Image: img, Warning: warning}, nil
}

// uniquePublicName derives a display name from the upload filename and
// suffixes it with _N until it no longer collides.
func (s *ImageService) uniquePublicName(ctx context.Context, filename string) (string, error) {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.TrimSpace(base)
	if base == "" || base == "." {
		base = "image"
	}

	candidate := base
	for n := 1; ; n++ {
		exists, err := s.images.ExistsPublicName(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

// applyTags upserts the tag rows and links them to the image.
func (s *ImageService) applyTags(ctx context.Context, imageID string, names []string) error {
	tagIDs := make([]string, 0, len(names))
	for _, name := range names {
		tag, err := s.tags.GetByName(ctx, name)
		if errors.Is(err, repository.ErrTagNotFound) {
			tag = models.Tag{ID: ids.New(), Name: name}
			if err := s.tags.Create(ctx, tag); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	return s.images.ReplaceTags(ctx, imageID, tagIDs)
}

// fetchForRead resolves an image honoring read visibility: admins and
// moderators see every image, regular users only their own. Anything else
// surfaces as not found rather than forbidden.
func (s *ImageService) fetchForRead(ctx context.Context, user models.User, id string) (models.Image, error) {
	var (
		img models.Image
		err error
	)
	if user.Role.CanModerate() {
		img, err = s.images.GetByID(ctx, id)
	} else {
		img, err = s.images.GetOwnedByID(ctx, id, user.ID)
	}
	if errors.Is(err, repository.ErrImageNotFound) {
		return models.Image{}, NewNotFoundError("Image not found")
	}
	return img, err
}

// fetchForWrite resolves an image for mutation: only admins bypass the
// ownership check.
func (s *ImageService) fetchForWrite(ctx context.Context, user models.User, id string) (models.Image, error) {
	var (
		img models.Image
		err error
	)
	if user.Role == models.RoleAdmin {
		img, err = s.images.GetByID(ctx, id)
	} else {
		img, err = s.images.GetOwnedByID(ctx, id, user.ID)
	}
	if errors.Is(err, repository.ErrImageNotFound) {
		return models.Image{}, NewNotFoundError("Image not found")
	}
	return img, err
}

func (s *ImageService) buildView(ctx context.Context, callerID string, img models.Image) (ImageView, error) {
	avg, err := s.ratings.AverageForImage(ctx, img.ID)
	if err != nil {
		return ImageView{}, err
	}
	comments, err := s.comments.ListByImageAndUser(ctx, img.ID, callerID)
	if err != nil {
		return ImageView{}, err
	}
	return ImageView{Image: img, Ratings: avg, Comments: comments}, nil
}

// List returns the caller's images, or every image when the caller is the
// admin. Each entry carries the average rating and the caller's own comments.
func (s *ImageService) List(ctx context.Context, user models.User) ([]ImageView, error) {
	var (
		imgs []models.Image
		err  error
	)
	if user.Role == models.RoleAdmin {
		imgs, err = s.images.List(ctx)
	} else {
		imgs, err = s.images.ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, user.ID, imgs)
}

func (s *ImageService) buildViews(ctx context.Context, callerID string, imgs []models.Image) ([]ImageView, error) {
	views := make([]ImageView, 0, len(imgs))
	for _, img := range imgs {
		view, err := s.buildView(ctx, callerID, img)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ImageService) Get(ctx context.Context, user models.User, id string) (ImageView, error) {
	img, err := s.fetchForRead(ctx, user, id)
	if err != nil {
		return ImageView{}, err
	}
	return s.buildView(ctx, user.ID, img)
}

func (s *ImageService) UpdateDescription(ctx context.Context, user models.User, id, description string) (models.Image, error) {
	if len(description) > maxDescriptionLen {
		return models.Image{}, NewUnprocessableError(fmt.Sprintf("Description should not exceed %d characters", maxDescriptionLen))
	}

	img, err := s.fetchForWrite(ctx, user, id)
	if err != nil {
		return models.Image{}, err
	}
	if err := s.images.UpdateDescription(ctx, img.ID, description); err != nil {
		return models.Image{}, err
	}
	img.Description = description
	return img, nil
}

type ReplaceTagsResult struct {
	Image   models.Image
	Warning string
}

func (s *ImageService) ReplaceTags(ctx context.Context, user models.User, id string, raw []string) (ReplaceTagsResult, error) {
	img, err := s.fetchForWrite(ctx, user, id)
	if err != nil {
		return ReplaceTagsResult{}, err
	}

	names, warning, err := NormalizeTags(raw)
	if err != nil {
		return ReplaceTagsResult{}, err
	}
	if err := s.applyTags(ctx, img.ID, names); err != nil {
		return ReplaceTagsResult{}, err
	}
	img.Tags, err = s.images.ListTags(ctx, img.ID)
	if err != nil {
		return ReplaceTagsResult{}, err
	}
	return ReplaceTagsResult{Image: img, Warning: warning}, nil
}

// Delete removes an image. Moderators and the admin may delete any image,
// users only their own.
func (s *ImageService) Delete(ctx context.Context, user models.User, id string) (models.Image, error) {
	img, err := s.fetchForRead(ctx, user, id)
	if err != nil {
		return models.Image{}, err
	}
	if err := s.images.Delete(ctx, img.ID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return models.Image{}, NewNotFoundError("Image not found")
		}
		return models.Image{}, err
	}
	s.log.Info().Str("image_id", img.ID).Str("deleted_by", user.ID).Msg("image deleted")
	return img, nil
}

// ListByUser is the admin view over another user's images. An empty result
// reports not found, matching image lookups by id.
func (s *ImageService) ListByUser(ctx context.Context, caller models.User, userID string) ([]ImageView, error) {
	imgs, err := s.images.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, NewNotFoundError("Image not found")
	}
	return s.buildViews(ctx, caller.ID, imgs)
}
