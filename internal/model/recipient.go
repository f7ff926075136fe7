package model

import "time"

// RecipientRole distinguishes parties that must sign from parties that
// only receive the document.
type RecipientRole string

const (
	RoleSigner RecipientRole = "signer"
	RoleViewer RecipientRole = "viewer"
)

// RecipientStatus advances independently per recipient.
type RecipientStatus string

const (
	RecipientPending   RecipientStatus = "pending"
	RecipientCompleted RecipientStatus = "completed"
	RecipientDeclined  RecipientStatus = "declined"
)

// Recipient is a party who must act on a document. Identity is immutable
// once created; only status and completion timestamp change afterwards.
// Token is the opaque signing-link credential, scoped to exactly this
// document/recipient pair.
type Recipient struct {
	ID          string          `json:"id"`
	DocumentID  string          `json:"document_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        RecipientRole   `json:"role"`
	Status      RecipientStatus `json:"status"`
	Token       string          `json:"-"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
