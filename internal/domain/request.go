package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of an ad request.
type RequestStatus string

// Known request statuses.
const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Common request validation errors
var (
	ErrEmptyRequestUser = errors.New("request user cannot be empty")
	ErrEmptyRequestAd   = errors.New("request ad cannot be empty")
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	}
	return false
}

// AdRequest links a user to an ad they have filed a request against.
// The (UserID, AdID) pair is unique; a user may request a given ad once.
type AdRequest struct {
	UserID    uuid.UUID     `json:"user_id"`
	AdID      uuid.UUID     `json:"ad_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewAdRequest creates a pending AdRequest from the given user against
// the given ad. Returns an error if validation fails.
func NewAdRequest(userID, adID uuid.UUID) (*AdRequest, error) {
	req := &AdRequest{
		UserID:    userID,
		AdID:      adID,
		Status:    RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the AdRequest has valid data.
// Returns an error if any field fails validation.
func (r *AdRequest) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrEmptyRequestUser
	}

	if r.AdID == uuid.Nil {
		return ErrEmptyRequestAd
	}

	if !r.Status.Valid() {
		return ErrInvalidRequestStatus
	}

	return nil
}
