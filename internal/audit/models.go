package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Action names the audited operation.
type Action string

const (
	// ActionLoanDecided: the engine produced a decision.
	ActionLoanDecided Action = "loan_decided"
	// ActionLoanRefused: the request failed validation or no loan could be computed.
	ActionLoanRefused Action = "loan_refused"
)

// Event is emitted after every decision request. Keep it transport-agnostic
// so sinks can fan out. The personal code is never carried raw.
type Event struct {
	Action        Action    `json:"action"`
	RequestID     string    `json:"request_id,omitempty"`
	SubjectIDHash string    `json:"subject_id_hash"`
	Country       string    `json:"country"`
	Outcome       string    `json:"outcome,omitempty"`
	ErrorCode     string    `json:"error_code,omitempty"`
	Amount        *int      `json:"amount"`
	Period        *int      `json:"period"`
	Timestamp     time.Time `json:"timestamp"`
}

// HashSubject returns the hex SHA-256 of a subject identifier.
func HashSubject(subject string) string {
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:])
}
