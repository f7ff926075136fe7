package model

import (
	"errors"
	"fmt"
)

// FieldType enumerates the interactive elements a sender can place on a
// document page.
type FieldType string

const (
	FieldSignature FieldType = "signature"
	FieldInitials  FieldType = "initials"
	FieldText      FieldType = "text"
	FieldCheckbox  FieldType = "checkbox"
	FieldDate      FieldType = "date"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldSignature, FieldInitials, FieldText, FieldCheckbox, FieldDate:
		return true
	}
	return false
}

// DefaultSize returns the width/height a newly placed field of this type
// starts with: 30x30 for checkboxes, 200x50 for everything else.
func (t FieldType) DefaultSize() (w, h float64) {
	if t == FieldCheckbox {
		return 30, 30
	}
	return 200, 50
}

// Field is a placed, positioned element bound to exactly one recipient
// and one page. Value is empty until the recipient signs.
type Field struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	RecipientID string    `json:"recipient_id"`
	Type        FieldType `json:"type"`
	Page        int       `json:"page"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	W           float64   `json:"w"`
	H           float64   `json:"h"`
	Required    bool      `json:"required"`
	Label       string    `json:"label,omitempty"`
	Value       string    `json:"value,omitempty"`
}

var ErrFieldUnassigned = errors.New("field has no recipient assigned")

// ValidatePlacement checks the placement-time invariants against the
// owning document's page count: a known type, an assigned recipient, a
// page within bounds, and non-negative geometry. Position-within-page
// bounds is a soft invariant enforced here, not re-checked at save time.
func (f *Field) ValidatePlacement(pageCount int) error {
	if !f.Type.Valid() {
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	if f.RecipientID == "" {
		return ErrFieldUnassigned
	}
	if f.Page < 1 || f.Page > pageCount {
		return fmt.Errorf("page %d out of range 1..%d", f.Page, pageCount)
	}
	if f.X < 0 || f.Y < 0 || f.W < 0 || f.H < 0 {
		return fmt.Errorf("negative geometry for field %s", f.ID)
	}
	return nil
}

// FieldUpdate carries the mutable attributes of an already-persisted
// field for a batch save. Identity and ownership never change.
type FieldUpdate struct {
	ID       string  `json:"id"`
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Required bool    `json:"required"`
	Label    string  `json:"label,omitempty"`
}

// FieldBatch is the three-set reconciling write computed by the field
// editor against its last persisted snapshot. The store applies all
// three partitions atomically or not at all.
type FieldBatch struct {
	Creates []Field       `json:"creates"`
	Updates []FieldUpdate `json:"updates"`
	Deletes []string      `json:"deletes"`
}

// Empty reports whether the batch would change nothing.
func (b FieldBatch) Empty() bool {
	return len(b.Creates) == 0 && len(b.Updates) == 0 && len(b.Deletes) == 0
}
