package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"cardsapi/internal/model"
	"cardsapi/internal/repository"
	"cardsapi/internal/storage"
)

// CreateReviewInput is the body of POST /reviews. Absent fields are empty strings.
type CreateReviewInput struct {
	Phone string
	Text  string
}

// ReviewService defines the use cases for reviews.
type ReviewService interface {
	// Create stores a review stamped with the current UTC time and, when an
	// archive is configured, copies it there.
	Create(ctx context.Context, in CreateReviewInput) (*model.Review, error)

	// List returns all reviews, newest first.
	List(ctx context.Context) ([]model.Review, error)
}

type reviewService struct {
	repo    repository.ReviewRepository
	archive storage.Storage
	metrics *Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewReviewService constructs a new ReviewService. archive may be nil.
func NewReviewService(repo repository.ReviewRepository, archive storage.Storage, metrics *Metrics, log zerolog.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		archive: archive,
		metrics: metrics,
		log:     log.With().Str("component", "reviews").Logger(),
		now:     time.Now,
	}
}

// ArchiveKey is the object key a stored review is archived under.
func ArchiveKey(id int64) string {
	return path.Join("reviews", strconv.FormatInt(id, 10)+".json")
}

func (s *reviewService) Create(ctx context.Context, in CreateReviewInput) (*model.Review, error) {
	stored, err := s.repo.Create(ctx, &model.Review{
		Phone:     in.Phone,
		Text:      in.Text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.metrics.reviewCreated()

	if s.archive != nil {
		s.archiveReview(ctx, stored)
	}
	return stored, nil
}

// archiveReview is best effort: the database row is the source of truth.
func (s *reviewService) archiveReview(ctx context.Context, r *model.Review) {
	body, err := json.Marshal(r)
	if err != nil {
		s.log.Warn().Err(err).Int64("review_id", r.ID).Msg("marshal review for archive")
		return
	}
	key := ArchiveKey(r.ID)
	if _, err := s.archive.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	}); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("archive review")
	}
}

func (s *reviewService) List(ctx context.Context) ([]model.Review, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return items, nil
}
