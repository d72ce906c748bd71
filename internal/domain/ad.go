package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AdType is the category of a published ad.
type AdType string

// Known ad types.
const (
	AdTypeService AdType = "service"
	AdTypeItem    AdType = "item"
)

// Common ad validation errors
var (
	ErrEmptyAdID      = errors.New("ad ID cannot be empty")
	ErrEmptyAdOwner   = errors.New("ad owner cannot be empty")
	ErrEmptyAdTitle   = errors.New("ad title cannot be empty")
	ErrEmptyAdCity    = errors.New("ad city cannot be empty")
	ErrEmptyAdZipCode = errors.New("ad zip code cannot be empty")
	ErrNegativeValue  = errors.New("value estimation cannot be negative")
)

// Valid reports whether t is a known ad type.
func (t AdType) Valid() bool {
	switch t {
	case AdTypeService, AdTypeItem:
		return true
	}
	return false
}

// Ad represents a marketplace listing owned by exactly one user.
type Ad struct {
	ID              uuid.UUID `json:"guid"`
	AddedBy         uuid.UUID `json:"added_by"`
	Title           string    `json:"title"`
	City            string    `json:"city"`
	ZipCode         string    `json:"zip_code"`
	Description     string    `json:"description,omitempty"`
	ValueEstimation float64   `json:"value_estimation"`
	AdType          AdType    `json:"ad_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAd creates a new Ad bound to the given owner.
// It generates a new UUID and sets the creation timestamp.
// Returns an error if validation fails.
func NewAd(
	addedBy uuid.UUID,
	title, city, zipCode, description string,
	valueEstimation float64,
	adType AdType,
) (*Ad, error) {
	ad := &Ad{
		ID:              uuid.New(),
		AddedBy:         addedBy,
		Title:           title,
		City:            city,
		ZipCode:         zipCode,
		Description:     description,
		ValueEstimation: valueEstimation,
		AdType:          adType,
		CreatedAt:       time.Now().UTC(),
	}

	if err := ad.Validate(); err != nil {
		return nil, err
	}

	return ad, nil
}

// Validate checks if the Ad has valid data.
// Returns an error if any field fails validation.
func (a *Ad) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAdID
	}

	if a.AddedBy == uuid.Nil {
		return ErrEmptyAdOwner
	}

	if a.Title == "" {
		return ErrEmptyAdTitle
	}

	if a.City == "" {
		return ErrEmptyAdCity
	}

	if a.ZipCode == "" {
		return ErrEmptyAdZipCode
	}

	if a.ValueEstimation < 0 {
		return ErrNegativeValue
	}

	if !a.AdType.Valid() {
		return ErrInvalidAdType
	}

	return nil
}
