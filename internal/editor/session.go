// Package editor holds the sender-side field placement state for one
// document: a local candidate set of fields plus the last persisted
// snapshot, reconciled into a single three-set batch at save time.
package editor

import (
	"errors"

	"github.com/google/uuid"

	"esignapi/internal/model"
)

var (
	ErrNoRecipientSelected = errors.New("no recipient selected")
	ErrUnknownField        = errors.New("unknown field id")
)

// Default placement for a newly added field. The sender drags it into
// position afterwards.
const (
	defaultX = 50.0
	defaultY = 50.0
)

// Session is the in-memory editing state for one document's fields. It
// is not safe for concurrent use; one session belongs to one sender
// request flow.
type Session struct {
	pageCount int

	// fields is the local candidate set, keyed by field ID.
	fields map[string]*model.Field
	// snapshot is the last persisted state, used as the diff baseline.
	snapshot map[string]model.Field
	// pendingDelete holds IDs removed locally that exist in the snapshot.
	pendingDelete map[string]struct{}

	activeRecipient string
	selected        string
}

// NewSession seeds an editing session from the persisted field set.
func NewSession(pageCount int, persisted []model.Field) *Session {
	s := &Session{
		pageCount:     pageCount,
		fields:        make(map[string]*model.Field, len(persisted)),
		snapshot:      make(map[string]model.Field, len(persisted)),
		pendingDelete: make(map[string]struct{}),
	}
	for _, f := range persisted {
		cp := f
		s.fields[f.ID] = &cp
		s.snapshot[f.ID] = f
	}
	return s
}

// SelectRecipient sets the recipient new fields are assigned to.
func (s *Session) SelectRecipient(recipientID string) {
	s.activeRecipient = recipientID
}

// AddField places a new candidate field of the given type on the given
// page, assigned to the active recipient, at the default position with
// the type's default size. Fails if no recipient is selected.
func (s *Session) AddField(t model.FieldType, page int) (*model.Field, error) {
	if s.activeRecipient == "" {
		return nil, ErrNoRecipientSelected
	}
	w, h := t.DefaultSize()
	f := &model.Field{
		ID:          uuid.NewString(),
		RecipientID: s.activeRecipient,
		Type:        t,
		Page:        page,
		X:           defaultX,
		Y:           defaultY,
		W:           w,
		H:           h,
		Required:    true,
	}
	if err := f.ValidatePlacement(s.pageCount); err != nil {
		return nil, err
	}
	s.fields[f.ID] = f
	s.selected = f.ID
	return f, nil
}

// MoveField updates a field's position. Pure local mutation.
func (s *Session) MoveField(id string, x, y float64) error {
	f, ok := s.fields[id]
	if !ok {
		return ErrUnknownField
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	f.X, f.Y = x, y
	return nil
}

// ResizeField updates a field's dimensions. Pure local mutation.
func (s *Session) ResizeField(id string, w, h float64) error {
	f, ok := s.fields[id]
	if !ok {
		return ErrUnknownField
	}
	if w < 0 || h < 0 {
		return errors.New("negative field size")
	}
	f.W, f.H = w, h
	return nil
}

// SetRequired toggles the required flag on a field.
func (s *Session) SetRequired(id string, required bool) error {
	f, ok := s.fields[id]
	if !ok {
		return ErrUnknownField
	}
	f.Required = required
	return nil
}

// SetLabel sets the display label on a field.
func (s *Session) SetLabel(id, label string) error {
	f, ok := s.fields[id]
	if !ok {
		return ErrUnknownField
	}
	f.Label = label
	return nil
}

// DeleteField removes a field from the local set. If it exists in the
// persisted snapshot its ID is queued for deletion on the next save.
func (s *Session) DeleteField(id string) error {
	if _, ok := s.fields[id]; !ok {
		return ErrUnknownField
	}
	delete(s.fields, id)
	if _, persisted := s.snapshot[id]; persisted {
		s.pendingDelete[id] = struct{}{}
	}
	if s.selected == id {
		s.selected = ""
	}
	return nil
}

// Select marks a field as the keyboard target.
func (s *Session) Select(id string) error {
	if _, ok := s.fields[id]; !ok {
		return ErrUnknownField
	}
	s.selected = id
	return nil
}

// Selected returns the currently selected field ID, if any.
func (s *Session) Selected() string { return s.selected }

// HandleKey applies keyboard semantics: delete/backspace removes the
// selected field, escape clears the selection only.
func (s *Session) HandleKey(key string) error {
	switch key {
	case "Delete", "Backspace":
		if s.selected == "" {
			return nil
		}
		return s.DeleteField(s.selected)
	case "Escape":
		s.selected = ""
	}
	return nil
}

// Fields returns a copy of the local candidate set.
func (s *Session) Fields() []model.Field {
	out := make([]model.Field, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, *f)
	}
	return out
}

// FieldsFor returns the local fields assigned to one recipient.
func (s *Session) FieldsFor(recipientID string) []model.Field {
	var out []model.Field
	for _, f := range s.fields {
		if f.RecipientID == recipientID {
			out = append(out, *f)
		}
	}
	return out
}

// HasUnsavedChanges reports whether the local set differs from the last
// persisted snapshot: any new field, any queued deletion, or any
// mutation on a previously persisted field. It gates the save control.
func (s *Session) HasUnsavedChanges() bool {
	if len(s.pendingDelete) > 0 {
		return true
	}
	for id, f := range s.fields {
		orig, ok := s.snapshot[id]
		if !ok || changed(orig, *f) {
			return true
		}
	}
	return false
}

// Diff computes the three-set batch relative to the last persisted
// snapshot: fields absent from the snapshot become creates, snapshot
// fields with mutated geometry/page/required/label become updates, and
// queued IDs become deletes. The diff applied to the snapshot yields
// exactly the current local set.
func (s *Session) Diff() model.FieldBatch {
	var b model.FieldBatch
	for id, f := range s.fields {
		orig, persisted := s.snapshot[id]
		switch {
		case !persisted:
			b.Creates = append(b.Creates, *f)
		case changed(orig, *f):
			b.Updates = append(b.Updates, model.FieldUpdate{
				ID:       f.ID,
				Page:     f.Page,
				X:        f.X,
				Y:        f.Y,
				W:        f.W,
				H:        f.H,
				Required: f.Required,
				Label:    f.Label,
			})
		}
	}
	for id := range s.pendingDelete {
		b.Deletes = append(b.Deletes, id)
	}
	return b
}

// Commit establishes a new baseline after the batch was applied by the
// store: every local field becomes "persisted" and the deletion queue is
// cleared. A failed save must not call Commit, leaving local state
// intact for a retry.
func (s *Session) Commit() {
	s.snapshot = make(map[string]model.Field, len(s.fields))
	for id, f := range s.fields {
		s.snapshot[id] = *f
	}
	s.pendingDelete = make(map[string]struct{})
}

func changed(a, b model.Field) bool {
	return a.Page != b.Page ||
		a.X != b.X || a.Y != b.Y ||
		a.W != b.W || a.H != b.H ||
		a.Required != b.Required ||
		a.Label != b.Label
}
