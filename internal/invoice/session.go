package invoice

import (
	"context"
	"sync"

	"github.com/minhvng/fruitbill/internal/preset"
)

// Session owns the draft being composed: the editable line items, an optional
// note and the saving flag. All mutation goes through the pure draft
// functions; the session just holds the current value and notifies the
// presentation layer after each change. Save runs on a background worker
// while the UI keeps reading the draft, so a mutex guards the held state.
// The pure functions never mutate a slice they were given, so handing the
// current slice to a reader under the lock is safe.
type Session struct {
	svc   *Service
	newID IDFunc

	mu       sync.Mutex
	items    []Item
	note     string
	saving   bool
	onChange func()
}

func NewSession(svc *Service) *Session {
	return NewSessionWithID(svc, NewID)
}

func NewSessionWithID(svc *Service, newID IDFunc) *Session {
	return &Session{
		svc:   svc,
		newID: newID,
		items: ResetItems(newID),
	}
}

// OnChange registers a hook invoked after every draft mutation. The core has
// no notion of rendering; this is how the UI learns to refresh. The hook is
// called outside the session lock, so it may read the session freely.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onChange = fn
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Items returns the current draft lines in display order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items
}

// TotalAmount is the running total of the draft.
func (s *Session) TotalAmount() int64 {
	return ComputeTotal(s.Items())
}

// IsSaving reports whether a save is in flight.
func (s *Session) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saving
}

func (s *Session) Note() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.note
}

func (s *Session) SetNote(note string) {
	s.mu.Lock()
	s.note = note
	s.mu.Unlock()

	s.notify()
}

func (s *Session) AddItem() {
	s.mu.Lock()
	s.items = AddItem(s.items, s.newID)
	s.mu.Unlock()

	s.notify()
}

func (s *Session) AddItemFromPreset(p preset.FruitPreset) {
	s.mu.Lock()
	s.items = AddItemFromPreset(s.items, p, s.newID)
	s.mu.Unlock()

	s.notify()
}

func (s *Session) RemoveItem(id string) {
	s.mu.Lock()
	s.items = RemoveItem(s.items, id, s.newID)
	s.mu.Unlock()

	s.notify()
}

func (s *Session) ApplyPreset(targetID string, p preset.FruitPreset) {
	s.mu.Lock()
	s.items = ApplyPreset(s.items, targetID, p)
	s.mu.Unlock()

	s.notify()
}

func (s *Session) UpdateField(targetID string, field Field, raw string) {
	s.mu.Lock()
	s.items = UpdateField(s.items, targetID, field, raw)
	s.mu.Unlock()

	s.notify()
}

// Reset discards the draft, leaving a single blank line and no note.
func (s *Session) Reset() {
	s.mu.Lock()
	s.items = ResetItems(s.newID)
	s.note = ""
	s.mu.Unlock()

	s.notify()
}

func (s *Session) setSaving(v bool) {
	s.mu.Lock()
	s.saving = v
	s.mu.Unlock()

	s.notify()
}

// Save validates the draft and persists it as a new invoice, then resets the
// draft for the next entry. An invalid draft returns ErrInvalidDraft without
// touching storage; a failed write leaves the draft intact so the user can
// retry. Save works on a snapshot of the draft taken up front; edits are not
// possible while the UI shows the saving state.
func (s *Session) Save(ctx context.Context) (*Invoice, error) {
	s.mu.Lock()
	items := s.items
	note := s.note
	s.mu.Unlock()

	total := ComputeTotal(items)
	if !Valid(items, total) {
		return nil, ErrInvalidDraft
	}

	s.setSaving(true)
	defer s.setSaving(false)

	inv, err := s.svc.Save(ctx, SaveParams{
		Items:       items,
		TotalAmount: total,
		Note:        note,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = ResetItems(s.newID)
	s.note = ""
	s.mu.Unlock()

	s.notify()

	return inv, nil
}
