package service

import (
	"context"
	"fmt"
	"time"

	"cardsapi/internal/model"
	"cardsapi/internal/repository"
)

const auditTimeLayout = "2006-01-02 15:04:05"

// EnterInput carries what POST /enter knows about the caller.
type EnterInput struct {
	Info      string
	IP        string
	UserAgent string
}

// EnterResult is the counter snapshot returned by POST /enter.
type EnterResult struct {
	Counter int       `json:"counter"`
	Last    time.Time `json:"last"`
}

// VisitService defines the use cases of the visit counter.
type VisitService interface {
	// Enter records one visit. When the table is empty it first stores the
	// primary record (counter 1); every call then stores an audit row with
	// counter -1. The result reflects the primary record as read, so repeat
	// calls keep returning its original counter and timestamp.
	Enter(ctx context.Context, in EnterInput) (*EnterResult, error)

	// List returns every visit row.
	List(ctx context.Context) ([]model.Visit, error)
}

type visitService struct {
	repo    repository.VisitRepository
	metrics *Metrics
	now     func() time.Time
}

// NewVisitService constructs a new VisitService.
func NewVisitService(repo repository.VisitRepository, metrics *Metrics) VisitService {
	return &visitService{repo: repo, metrics: metrics, now: time.Now}
}

// AuditLine renders the text stored with each visit row.
func AuditLine(at time.Time, in EnterInput) string {
	return fmt.Sprintf("[%s] IP: %s, Agent: %s, Info: %s\n",
		at.UTC().Format(auditTimeLayout), in.IP, in.UserAgent, in.Info)
}

func (s *visitService) Enter(ctx context.Context, in EnterInput) (*EnterResult, error) {
	now := s.now().UTC()
	text := AuditLine(now, in)

	var res EnterResult
	err := s.repo.InTx(ctx, func(tx repository.VisitRepository) error {
		first, ok, err := tx.First(ctx)
		if err != nil {
			return err
		}
		// Concurrent first calls can all land here; nothing serializes them.
		if !ok {
			first = model.Visit{Counter: 1, Text: text, LastEntered: now}
			if _, err := tx.Create(ctx, &first); err != nil {
				return err
			}
		}
		if _, err := tx.Create(ctx, &model.Visit{Counter: -1, Text: text, LastEntered: now}); err != nil {
			return err
		}
		res = EnterResult{Counter: first.Counter, Last: first.LastEntered}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}

	s.metrics.visitRecorded()
	return &res, nil
}

func (s *visitService) List(ctx context.Context) ([]model.Visit, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return items, nil
}
