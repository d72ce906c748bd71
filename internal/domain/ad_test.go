package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAd(t *testing.T) {
	owner := uuid.New()

	ad, err := NewAd(owner, "Lawn mowing", "Austin", "78701", "Weekly service", 40, AdTypeService)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if ad.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if ad.AddedBy != owner {
		t.Errorf("Expected owner %s, got %s", owner, ad.AddedBy)
	}

	if ad.AdType != AdTypeService {
		t.Errorf("Expected ad type %s, got %s", AdTypeService, ad.AdType)
	}

	if ad.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test missing owner
	_, err = NewAd(uuid.Nil, "Lawn mowing", "Austin", "78701", "", 40, AdTypeService)
	if err != ErrEmptyAdOwner {
		t.Errorf("Expected error %v, got %v", ErrEmptyAdOwner, err)
	}

	// Test unknown ad type
	_, err = NewAd(owner, "Lawn mowing", "Austin", "78701", "", 40, AdType("rental"))
	if err != ErrInvalidAdType {
		t.Errorf("Expected error %v, got %v", ErrInvalidAdType, err)
	}
}

func TestAdValidate(t *testing.T) {
	validAd := Ad{
		ID:              uuid.New(),
		AddedBy:         uuid.New(),
		Title:           "Used bike",
		City:            "Austin",
		ZipCode:         "78701",
		ValueEstimation: 150,
		AdType:          AdTypeItem,
	}

	if err := validAd.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(ad *Ad)
		wantErr error
	}{
		{"nil ID", func(ad *Ad) { ad.ID = uuid.Nil }, ErrEmptyAdID},
		{"nil owner", func(ad *Ad) { ad.AddedBy = uuid.Nil }, ErrEmptyAdOwner},
		{"empty title", func(ad *Ad) { ad.Title = "" }, ErrEmptyAdTitle},
		{"empty city", func(ad *Ad) { ad.City = "" }, ErrEmptyAdCity},
		{"empty zip code", func(ad *Ad) { ad.ZipCode = "" }, ErrEmptyAdZipCode},
		{"negative value", func(ad *Ad) { ad.ValueEstimation = -1 }, ErrNegativeValue},
		{"unknown ad type", func(ad *Ad) { ad.AdType = "rental" }, ErrInvalidAdType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ad := validAd
			tc.mutate(&ad)
			if err := ad.Validate(); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAdTypeValid(t *testing.T) {
	if !AdTypeService.Valid() {
		t.Error("Expected service to be a valid ad type")
	}
	if !AdTypeItem.Valid() {
		t.Error("Expected item to be a valid ad type")
	}
	if AdType("").Valid() {
		t.Error("Expected empty ad type to be invalid")
	}
	if AdType("rental").Valid() {
		t.Error("Expected rental to be invalid")
	}
}
