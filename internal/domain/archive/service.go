package archive

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/medresus/medresus/internal/domain/caselog"
)

// Service stores closed cases and serves the review listing. It satisfies
// the case log's Archiver contract.
type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, log: logger, now: time.Now}
}

// Archive stores a closed case. Events must arrive oldest-first.
func (s *Service) Archive(ctx context.Context, caseID string, startedAt int64, events []caselog.Event) (string, error) {
	a := &ArchivedCase{
		CaseID:    caseID,
		StartedAt: startedAt,
		EndedAt:   s.now().UnixMilli(),
		Log:       events,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return "", fmt.Errorf("archive case %s: %w", caseID, err)
	}
	s.log.Info().Str("case_id", caseID).Str("archive_id", a.ID).
		Int("events", len(events)).Msg("case archived")
	return a.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ArchivedCase, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*ArchivedCase, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ByMonth groups archived cases into "YYYY-MM" buckets, newest bucket
// first. Cases within a bucket keep their newest-first order.
func (s *Service) ByMonth(ctx context.Context, limit, offset int) ([]MonthGroup, int, error) {
	cases, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	byMonth := make(map[string][]ArchivedCase)
	var order []string
	for _, a := range cases {
		m := a.Month()
		if _, ok := byMonth[m]; !ok {
			order = append(order, m)
		}
		byMonth[m] = append(byMonth[m], *a)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	groups := make([]MonthGroup, len(order))
	for i, m := range order {
		groups[i] = MonthGroup{Month: m, Cases: byMonth[m]}
	}
	return groups, total, nil
}
