package stores

import (
	"context"
	"sync"

	"github.com/trackvers/trackvers/internal/client/localdata"
)

// TutorialStep is one onboarding hint shown on first use.
type TutorialStep struct {
	Title   string
	Content string
}

// tutorialSteps walks a new user through the main surfaces once.
var tutorialSteps = []TutorialStep{
	{Title: "Welcome to TrackVers", Content: "Browse the software catalog and keep an eye on the versions you run."},
	{Title: "Track software", Content: "Toggle tracking on any catalog item to pin the version you currently use."},
	{Title: "Your dashboard", Content: "Tracked software shows its status, available updates and end-of-life dates."},
	{Title: "Stay current", Content: "Run a version check any time to pull the newest release data."},
}

// TutorialStore drives the first-run walkthrough. Completion is persisted
// locally, so the tutorial shows at most once per installation.
type TutorialStore struct {
	mu    sync.RWMutex
	local localdata.Store

	open      bool
	step      int
	completed bool
}

func NewTutorialStore(local localdata.Store) *TutorialStore {
	return &TutorialStore{local: local}
}

// Init loads the persisted completion flag and opens the tutorial when it has
// never been completed.
func (s *TutorialStore) Init(ctx context.Context) error {
	raw, err := s.local.Get(ctx, localdata.KeyTutorialCompleted)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = string(raw) == "true"
	s.open = !s.completed
	s.step = 0
	return nil
}

func (s *TutorialStore) Open() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

func (s *TutorialStore) Completed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

// Step returns the current step; ok is false when the tutorial is closed.
func (s *TutorialStore) Step() (TutorialStep, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open || s.step >= len(tutorialSteps) {
		return TutorialStep{}, false
	}
	return tutorialSteps[s.step], true
}

func (s *TutorialStore) StepNumber() (current, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step + 1, len(tutorialSteps)
}

// Next advances; the last step completes the tutorial.
func (s *TutorialStore) Next(ctx context.Context) error {
	s.mu.Lock()
	if s.step < len(tutorialSteps)-1 {
		s.step++
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.Complete(ctx)
}

func (s *TutorialStore) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > 0 {
		s.step--
	}
}

// Skip closes the tutorial and persists completion, same as finishing it.
func (s *TutorialStore) Skip(ctx context.Context) error {
	return s.Complete(ctx)
}

func (s *TutorialStore) Complete(ctx context.Context) error {
	s.mu.Lock()
	s.open = false
	s.completed = true
	s.mu.Unlock()
	return s.local.Set(ctx, localdata.KeyTutorialCompleted, []byte("true"))
}

// Restart reopens the walkthrough from the first step without clearing the
// persisted flag until it is completed again.
func (s *TutorialStore) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.step = 0
}
