package caselog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medresus/medresus/internal/platform/kvstore"
	"github.com/medresus/medresus/pkg/timefmt"
)

const (
	activeCaseKey = "activeCaseId"

	// FreshnessWindow is how long a persisted case stays resumable. Older
	// snapshots are treated as absent and a fresh case is started.
	FreshnessWindow = 6 * time.Hour

	// persistDebounce coalesces rapid successive mutations into one
	// snapshot write.
	persistDebounce = 350 * time.Millisecond
)

func caseKey(id string) string { return "case:" + id }

// Archiver receives closed cases for permanent storage.
type Archiver interface {
	Archive(ctx context.Context, caseID string, startedAt int64, events []Event) (string, error)
}

// Service owns the active case log. All mutations go through it; callers
// only ever see copies of the state.
type Service struct {
	store    kvstore.Store
	archiver Archiver
	log      zerolog.Logger

	mu      sync.Mutex
	cs      *CaseState
	pending *time.Timer

	now func() time.Time
}

// NewService creates a case log service backed by the given store. The
// archiver may be nil when archival is not wired (tests).
func NewService(store kvstore.Store, archiver Archiver, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		archiver: archiver,
		log:      logger,
		now:      time.Now,
	}
}

// StartOrResume loads the persisted active case if one exists within the
// freshness window, otherwise starts a fresh case. The result is a copy.
func (s *Service) StartOrResume(ctx context.Context) (CaseState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cs == nil {
		s.cs = s.loadOrCreateLocked(ctx)
	}
	return s.copyLocked(), nil
}

func (s *Service) loadOrCreateLocked(ctx context.Context) *CaseState {
	if raw, err := s.store.Get(ctx, activeCaseKey); err == nil {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			if snap, err := s.store.Get(ctx, caseKey(id)); err == nil {
				var cs CaseState
				if err := json.Unmarshal(snap, &cs); err == nil {
					age := s.now().UnixMilli() - cs.StartedAt
					if age < FreshnessWindow.Milliseconds() && !cs.Closed {
						s.log.Info().Str("case_id", cs.CaseID).Msg("resumed case")
						return &cs
					}
					s.log.Info().Str("case_id", cs.CaseID).Msg("persisted case is stale, starting fresh")
				}
			}
		}
	} else if err != kvstore.ErrNotFound {
		s.log.Warn().Err(err).Msg("load active case failed, starting fresh")
	}

	cs := &CaseState{
		CaseID:    uuid.NewString(),
		StartedAt: s.now().UnixMilli(),
		Events:    []Event{},
	}
	s.persistLocked(cs)
	s.log.Info().Str("case_id", cs.CaseID).Msg("started case")
	return cs
}

// Active returns a copy of the current case state, loading or creating one
// if needed.
func (s *Service) Active(ctx context.Context) (CaseState, error) {
	return s.StartOrResume(ctx)
}

// Append validates and appends a new event at the head of the sequence
// (newest-first order) and updates the derived counters in the same
// critical section. The stored event is returned.
func (s *Service) Append(ctx context.Context, ev Event) (Event, error) {
	if ev.Action == "" {
		return Event{}, fmt.Errorf("action is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		s.cs = s.loadOrCreateLocked(ctx)
	}

	now := s.now().UnixMilli()
	ev.ID = uuid.NewString()
	ev.TS = now
	ev.TRelMs = now - s.cs.StartedAt
	if ev.TRelMs < 0 {
		// Clock skew. Keep the event; flag the data quality issue.
		s.log.Warn().Str("case_id", s.cs.CaseID).Int64("t_rel_ms", ev.TRelMs).
			Msg("event timestamp precedes case start")
	}

	if ev.Type == EventRescEnded || ev.Type == EventROSC {
		if ev.Details == "" {
			ev.Details = "at " + timefmt.Elapsed(ev.TRelMs)
		}
		s.cs.Closed = true
	}
	s.cs.Events = append([]Event{ev}, s.cs.Events...)
	s.recomputeDerivedLocked()
	s.schedulePersistLocked()
	return ev, nil
}

// UndoLast removes the most recently appended event. No-op when empty.
func (s *Service) UndoLast(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil || len(s.cs.Events) == 0 {
		return
	}
	s.cs.Events = s.cs.Events[1:]
	s.recomputeDerivedLocked()
	s.schedulePersistLocked()
}

// EditDetails replaces the details field of the event with the given id.
// Silent no-op when the id is not found; no other field is editable.
func (s *Service) EditDetails(ctx context.Context, id, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		return
	}
	for i := range s.cs.Events {
		if s.cs.Events[i].ID == id {
			s.cs.Events[i].Details = details
			s.schedulePersistLocked()
			return
		}
	}
}

// Remove deletes the event with the given id. Silent no-op when not found.
func (s *Service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		return
	}
	for i := range s.cs.Events {
		if s.cs.Events[i].ID == id {
			s.cs.Events = append(s.cs.Events[:i], s.cs.Events[i+1:]...)
			s.recomputeDerivedLocked()
			s.schedulePersistLocked()
			return
		}
	}
}

// MetaUpdate carries optional case metadata changes; nil fields are left
// untouched.
type MetaUpdate struct {
	Location   *string  `json:"location,omitempty"`
	UHID       *string  `json:"uhid,omitempty"`
	Rhythm     *Rhythm  `json:"rhythm,omitempty"`
	CycleCount *int     `json:"cycle_count,omitempty"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
}

// UpdateMeta applies a metadata patch to the active case.
func (s *Service) UpdateMeta(ctx context.Context, upd MetaUpdate) (CaseState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		s.cs = s.loadOrCreateLocked(ctx)
	}
	if upd.Location != nil {
		s.cs.Location = *upd.Location
	}
	if upd.UHID != nil {
		s.cs.UHID = *upd.UHID
	}
	if upd.Rhythm != nil {
		s.cs.Rhythm = *upd.Rhythm
	}
	if upd.CycleCount != nil {
		s.cs.CycleCount = *upd.CycleCount
	}
	if upd.WeightKg != nil {
		s.cs.WeightKg = *upd.WeightKg
	}
	s.schedulePersistLocked()
	return s.copyLocked(), nil
}

// AssignRole records a role assignment and logs the transition as an event.
func (s *Service) AssignRole(ctx context.Context, ra RoleAssignment) (Event, error) {
	if ra.Name == "" {
		return Event{}, fmt.Errorf("name is required")
	}
	if _, ok := RoleLabels[ra.RoleID]; !ok {
		return Event{}, fmt.Errorf("unknown role %q", ra.RoleID)
	}

	s.mu.Lock()
	if s.cs == nil {
		s.cs = s.loadOrCreateLocked(ctx)
	}
	// The transition records the role the assignee is moving out of, found
	// by name in the current role map.
	var from RoleID
	for id, prev := range s.cs.Roles {
		if prev.Name == ra.Name && id != ra.RoleID {
			from = id
			break
		}
	}
	if s.cs.Roles == nil {
		s.cs.Roles = make(map[RoleID]RoleAssignment)
	}
	ra.AssignedAt = s.now().UnixMilli()
	s.cs.Roles[ra.RoleID] = ra
	s.mu.Unlock()

	return s.Append(ctx, Event{
		Type:    EventRoleTransition,
		Section: SectionCirculation,
		Action:  fmt.Sprintf("%s assigned to %s", ra.Name, RoleLabels[ra.RoleID]),
		Role:    ra.RoleID,
		RoleTransition: &RoleTransitionDetail{
			Name:     ra.Name,
			FromRole: from,
			ToRole:   ra.RoleID,
		},
	})
}

// CloseCase flushes and archives the active case and clears the active
// pointer. The archived case id is returned when an archiver is wired.
func (s *Service) CloseCase(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		return "", fmt.Errorf("no active case")
	}

	s.cancelPendingLocked()
	s.cs.Closed = true
	s.persistLocked(s.cs)

	var archivedID string
	if s.archiver != nil {
		id, err := s.archiver.Archive(ctx, s.cs.CaseID, s.cs.StartedAt, s.cs.Chronological())
		if err != nil {
			return "", fmt.Errorf("archive case: %w", err)
		}
		archivedID = id
	}

	if err := s.store.Remove(ctx, activeCaseKey); err != nil {
		s.log.Warn().Err(err).Msg("clear active case pointer failed")
	}
	s.log.Info().Str("case_id", s.cs.CaseID).Str("archived_id", archivedID).Msg("case closed")
	s.cs = nil
	return archivedID, nil
}

// Flush writes any pending snapshot immediately.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cs == nil {
		return
	}
	s.cancelPendingLocked()
	s.persistLocked(s.cs)
}

// Stop cancels the pending write and flushes. Call during shutdown.
func (s *Service) Stop() {
	s.Flush(context.Background())
}

// recomputeDerivedLocked rebuilds the derived counters from the event
// sequence so they can never drift from it under undo or removal.
func (s *Service) recomputeDerivedLocked() {
	shocks := 0
	var lastEpi *int64
	advanced := false
	for i := range s.cs.Events {
		ev := &s.cs.Events[i]
		if IsShockAction(ev.Action) {
			shocks++
		}
		if IsEpinephrineAction(ev.Action) {
			if lastEpi == nil || ev.TS > *lastEpi {
				ts := ev.TS
				lastEpi = &ts
			}
		}
		if IsAdvancedAirway(ev) || IsContinuousRatioAction(ev.Action) {
			advanced = true
		}
	}
	s.cs.ShockCount = shocks
	s.cs.LastEpiTS = lastEpi
	s.cs.AirwayAdvanced = advanced
}

// schedulePersistLocked arms (or re-arms) the debounce timer. A mutation
// arriving before the timer fires supersedes the pending write.
func (s *Service) schedulePersistLocked() {
	s.cancelPendingLocked()
	cs := s.cs
	s.pending = time.AfterFunc(persistDebounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cs != cs {
			return // superseded by close/new case
		}
		s.persistLocked(s.cs)
	})
}

func (s *Service) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// persistLocked writes the snapshot and the active-case pointer. Failures
// are logged; in-memory state remains the source of truth.
func (s *Service) persistLocked(cs *CaseState) {
	ctx := context.Background()
	snap, err := json.Marshal(cs)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal case snapshot failed")
		return
	}
	if err := s.store.Set(ctx, caseKey(cs.CaseID), snap); err != nil {
		s.log.Warn().Err(err).Str("case_id", cs.CaseID).Msg("persist case snapshot failed")
		return
	}
	id, _ := json.Marshal(cs.CaseID)
	if err := s.store.Set(ctx, activeCaseKey, id); err != nil {
		s.log.Warn().Err(err).Msg("persist active case pointer failed")
	}
}

func (s *Service) copyLocked() CaseState {
	cp := *s.cs
	cp.Events = make([]Event, len(s.cs.Events))
	copy(cp.Events, s.cs.Events)
	if s.cs.Roles != nil {
		cp.Roles = make(map[RoleID]RoleAssignment, len(s.cs.Roles))
		for k, v := range s.cs.Roles {
			cp.Roles[k] = v
		}
	}
	return cp
}
