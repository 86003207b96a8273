// Package store provides the application store: the single source of truth for
// candidates and the job catalog.
//
// Every mutation replaces the candidate list with a new slice (copy-on-write), bumps
// the snapshot version, persists the whole state to the configured slot and then
// notifies subscribers. Operations that reference an unknown candidate id are no-ops:
// nothing is replaced, persisted or published, and the method reports false.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Linda-Mensah/hire-link/internal/offer"
	"github.com/Linda-Mensah/hire-link/internal/pipeline"
	"github.com/Linda-Mensah/hire-link/internal/schemas"
	"github.com/Linda-Mensah/hire-link/internal/storage"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// StorageKey is the slot key the application state is persisted under.
const StorageKey = "hirelink-storage"

// snapshotVersion is written into every persisted blob.
const snapshotVersion = 1

// Snapshot is an immutable view of the candidate list at one version.
// Candidates must be treated as read-only.
type Snapshot struct {
	Version    uint64            `json:"version"`
	Candidates []types.Candidate `json:"candidates"`
}

// persistedState is the on-slot representation.
type persistedState struct {
	Version      int               `json:"version"`
	Applications []types.Candidate `json:"applications"`
}

// Store holds candidates and jobs. It is safe for concurrent use; mutations are serialized.
type Store struct {
	mu         sync.RWMutex
	candidates []types.Candidate
	jobs       []types.Job
	version    uint64
	persistErr error

	slot  storage.Slot
	key   string
	now   func() time.Time
	newID func() string

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Option configures a Store
type Option func(*Store)

// WithSlot persists state to slot after every mutation
func WithSlot(slot storage.Slot) Option {
	return func(s *Store) { s.slot = slot }
}

// WithStorageKey overrides StorageKey
func WithStorageKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the time source used for application dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides candidate id generation
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithJobs replaces the default job catalog
func WithJobs(jobs []types.Job) Option {
	return func(s *Store) { s.jobs = slices.Clone(jobs) }
}

// WithCandidates replaces the seed candidates
func WithCandidates(candidates []types.Candidate) Option {
	return func(s *Store) { s.candidates = cloneAll(candidates) }
}

// New creates a store holding the seed candidates and the default catalog.
// Without WithSlot nothing is persisted.
func New(opts ...Option) *Store {
	s := &Store{
		candidates: SeedCandidates(),
		jobs:       DefaultJobs(),
		key:        StorageKey,
		now:        time.Now,
		newID:      NewApplicationID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewApplicationID returns a fresh candidate id of the form app_<uuid>.
func NewApplicationID() string {
	return "app_" + uuid.NewString()
}

// Load rehydrates the candidate list from the slot.
// An empty slot yields LoadFresh with seed data; an unreadable or schema-invalid
// blob yields LoadCorrupted and also resets to seed data. An error is returned
// only when the slot itself cannot be read, in which case state is left unchanged.
func (s *Store) Load(ctx context.Context) (storage.LoadResult, error) {
	if s.slot == nil {
		return storage.LoadFresh, nil
	}

	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to read application state: %w", err)
	}

	result := storage.LoadRestored
	var candidates []types.Candidate

	switch {
	case !ok:
		result = storage.LoadFresh
		candidates = SeedCandidates()
	default:
		state, decodeErr := decodeState(data)
		if decodeErr != nil {
			log.Printf("[store] Stored application state is corrupted, resetting to seed data: %v", decodeErr)
			result = storage.LoadCorrupted
			candidates = SeedCandidates()
		} else {
			candidates = state.Applications
		}
	}

	s.mu.Lock()
	s.candidates = candidates
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return result, nil
}

func decodeState(data []byte) (*persistedState, error) {
	if err := schemas.ValidateApplicationState(data); err != nil {
		return nil, err
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse application state: %w", err)
	}
	if state.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported application state version %d", state.Version)
	}
	if state.Applications == nil {
		state.Applications = []types.Candidate{}
	}
	for i := range state.Applications {
		state.Applications[i].Skills = cloneSkills(state.Applications[i].Skills)
	}
	return &state, nil
}

// SubmitApplication appends a new candidate in the applied stage and returns its id.
// The id is unique within the store and the application date is the current time.
// No validation is performed; a nil skills list is stored as empty.
func (s *Store) SubmitApplication(ctx context.Context, fields types.CandidateFields) string {
	fields.Skills = cloneSkills(fields.Skills)

	s.mu.Lock()
	id := s.newID()
	for s.indexLocked(id) >= 0 {
		id = s.newID()
	}

	candidate := types.Candidate{
		ID:              id,
		CandidateFields: fields,
		ApplicationDate: s.now().UTC(),
		Stage:           pipeline.Initial,
	}

	next := make([]types.Candidate, len(s.candidates), len(s.candidates)+1)
	copy(next, s.candidates)
	next = append(next, candidate)
	snap := s.commitLocked(ctx, next)
	s.mu.Unlock()

	s.publish(snap)
	return id
}

// UpdateCandidateStage moves a candidate to stage. Any valid stage is accepted,
// including non-adjacent jumps and same-stage writes. Unknown stage values are ignored.
func (s *Store) UpdateCandidateStage(ctx context.Context, id string, stage types.Stage) bool {
	if !stage.IsValid() {
		return false
	}
	return s.apply(ctx, id, withStage(stage))
}

// UpdateCandidateScore sets a candidate's score. The value is stored as given.
func (s *Store) UpdateCandidateScore(ctx context.Context, id string, score int) bool {
	return s.apply(ctx, id, withScore(score))
}

// AddNote replaces a candidate's notes.
func (s *Store) AddNote(ctx context.Context, id string, text string) bool {
	return s.apply(ctx, id, withNotes(text))
}

// ScheduleInterview records the interview time and moves the candidate to
// interview_scheduled, whatever its prior stage. The time is stored in UTC, so the
// stored value is Equal to at but carries a different location when at is not UTC.
func (s *Store) ScheduleInterview(ctx context.Context, id string, at time.Time) bool {
	return s.apply(ctx, id, interviewScheduled(at))
}

// GenerateOffer writes an offer letter with the default terms and moves the
// candidate to offer_sent.
func (s *Store) GenerateOffer(ctx context.Context, id string) bool {
	ok, err := s.GenerateOfferWithTerms(ctx, id, offer.DefaultTerms())
	if err != nil {
		log.Printf("[store] Failed to generate offer for %s: %v", id, err)
		return false
	}
	return ok
}

// GenerateOfferWithTerms is GenerateOffer with explicit compensation terms.
// The letter is regenerated from the current record on every call.
func (s *Store) GenerateOfferWithTerms(ctx context.Context, id string, terms offer.Terms) (bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	text, err := offer.Render(s.candidates[i].FullName, terms)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	snap := s.replaceLocked(ctx, i, offerSent(text))
	s.mu.Unlock()

	s.publish(snap)
	return true, nil
}

// GetCandidatesByStage returns the candidates in stage, in insertion order.
func (s *Store) GetCandidatesByStage(stage types.Stage) []types.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []types.Candidate{}
	for _, c := range s.candidates {
		if c.Stage == stage {
			out = append(out, c.Clone())
		}
	}
	return out
}

// GetCandidate looks a candidate up by id.
func (s *Store) GetCandidate(id string) (types.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.candidates[i].Clone(), true
	}
	return types.Candidate{}, false
}

// GetJobByID looks a job up in the catalog.
func (s *Store) GetJobByID(id string) (types.Job, bool) {
	for _, j := range s.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return types.Job{}, false
}

// Jobs returns the job catalog.
func (s *Store) Jobs() []types.Job {
	return slices.Clone(s.jobs)
}

// Snapshot returns the current candidate list and its version.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Version increases on every successful mutation or load.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastPersistError returns the error from the most recent persist attempt, if it failed.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// Subscribe registers fn to receive a snapshot after every change.
// fn runs synchronously on the mutating goroutine, so concurrent mutations may
// deliver snapshots out of version order. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// apply runs t against the candidate with id. It reports false when id is unknown.
func (s *Store) apply(ctx context.Context, id string, t transition) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	snap := s.replaceLocked(ctx, i, t)
	s.mu.Unlock()

	s.publish(snap)
	return true
}

func (s *Store) replaceLocked(ctx context.Context, i int, t transition) Snapshot {
	next := slices.Clone(s.candidates)
	next[i] = t(next[i].Clone())
	return s.commitLocked(ctx, next)
}

// commitLocked installs next as the candidate list and persists it.
func (s *Store) commitLocked(ctx context.Context, next []types.Candidate) Snapshot {
	s.candidates = next
	s.version++
	s.persistErr = s.persistLocked(ctx)
	return s.snapshotLocked()
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}

	data, err := json.Marshal(persistedState{
		Version:      snapshotVersion,
		Applications: s.candidates,
	})
	if err != nil {
		log.Printf("[store] Failed to encode application state: %v", err)
		return fmt.Errorf("failed to encode application state: %w", err)
	}

	if err := s.slot.Set(ctx, s.key, data); err != nil {
		log.Printf("[store] Failed to persist application state: %v", err)
		return err
	}
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Version: s.version, Candidates: s.candidates}
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.candidates, func(c types.Candidate) bool { return c.ID == id })
}

func cloneAll(candidates []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = c.Clone()
		out[i].Skills = cloneSkills(c.Skills)
	}
	return out
}

// cloneSkills copies skills, turning nil into an empty list so it persists as [].
func cloneSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return slices.Clone(skills)
}
