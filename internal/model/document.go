package model

import "time"

// DocumentStatus is the aggregate lifecycle state of a document across
// all of its recipients.
type DocumentStatus string

const (
	// StatusDraft: editable, not yet visible to recipients.
	StatusDraft DocumentStatus = "draft"
	// StatusPending: sent, no recipient has signed yet.
	StatusPending DocumentStatus = "pending"
	// StatusInProgress: at least one but not all signers have completed.
	StatusInProgress DocumentStatus = "in_progress"
	// StatusCompleted: all signers complete. Terminal.
	StatusCompleted DocumentStatus = "completed"
	// StatusVoided: cancelled by the sender before completion. Terminal.
	StatusVoided DocumentStatus = "voided"
	// StatusDeclined: a recipient explicitly refused. Terminal.
	StatusDeclined DocumentStatus = "declined"
)

// Terminal reports whether no further transitions are possible from s.
func (s DocumentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusVoided, StatusDeclined:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal
// transition. voided and declined are reachable from any non-terminal
// state; in_progress and completed are only ever produced by the
// signed-count recomputation during submission, never set directly by a
// client action.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusVoided, StatusDeclined:
		return true
	case StatusPending:
		return s == StatusDraft
	case StatusInProgress:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusPending || s == StatusInProgress
	}
	return false
}

// Document represents one file sent for signature.
// This is a pure domain model with no database-specific dependencies or tags.
// Documents are never physically deleted; they are voided instead.
type Document struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	StoragePath  string         `json:"storage_path"`
	PageCount    int            `json:"page_count"`
	Status       DocumentStatus `json:"status"`
	SignerCount  int            `json:"signer_count"`
	SignedCount  int            `json:"signed_count"`
	DealID       *string        `json:"deal_id,omitempty"`
	VoidedReason *string        `json:"voided_reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	SentAt       *time.Time     `json:"sent_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}
