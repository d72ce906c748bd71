package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	GivenName   string `json:"given_name"   validate:"required,min=1,max=100"`
	LastName    string `json:"last_name"    validate:"required,min=1,max=100"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
	City        string `json:"city"         validate:"omitempty,max=100"`
	Country     string `json:"country"      validate:"omitempty,max=100"`
	Address     string `json:"address"      validate:"omitempty,max=200"`
	ZipCode     string `json:"zip_code"     validate:"omitempty,max=20"`
	Birthday    string `json:"birthday"     validate:"omitempty,max=30"`
	PhonePrefix string `json:"phone_prefix" validate:"omitempty,max=8"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

// TokenResponse defines the successful response for the token endpoint,
// shaped like an OAuth2 password-grant response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public projection of a user. Credential material
// (hash, auth token, plaintext) is never part of it.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	GivenName   string    `json:"given_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Verified    bool      `json:"verified"`
	Disabled    bool      `json:"disabled"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	Address     string    `json:"address,omitempty"`
	ZipCode     string    `json:"zip_code,omitempty"`
	Birthday    string    `json:"birthday,omitempty"`
	PhonePrefix string    `json:"phone_prefix,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAdRequest defines the payload for publishing an ad.
type CreateAdRequest struct {
	Title           string  `json:"title"            validate:"required,min=1,max=200"`
	City            string  `json:"city"             validate:"required,min=1,max=100"`
	ZipCode         string  `json:"zip_code"         validate:"required,min=1,max=20"`
	Description     string  `json:"description"      validate:"omitempty,max=2000"`
	ValueEstimation float64 `json:"value_estimation" validate:"gte=0"`
	AdType          string  `json:"ad_type"          validate:"required"`
}

// AdResponse represents the response data for an ad.
type AdResponse struct {
	GUID            uuid.UUID `json:"guid"`
	AddedBy         uuid.UUID `json:"added_by"`
	Title           string    `json:"title"`
	City            string    `json:"city"`
	ZipCode         string    `json:"zip_code"`
	Description     string    `json:"description,omitempty"`
	ValueEstimation float64   `json:"value_estimation"`
	AdType          string    `json:"ad_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateRequestRequest defines the payload for filing a request against
// an ad.
type CreateRequestRequest struct {
	AdGUID string `json:"ad_guid" validate:"required,uuid"`
}

// CreateRequestResponse confirms a filed request.
type CreateRequestResponse struct {
	AdGUID uuid.UUID `json:"ad_guid"`
	Status string    `json:"status"`
}

// RequestDetailResponse is one entry of a request listing: the request
// status with the target ad and its owner's public projection embedded.
type RequestDetailResponse struct {
	Status  string       `json:"status"`
	Ad      AdResponse   `json:"ad"`
	AddedBy UserResponse `json:"added_by"`
}

// userToResponse converts a domain.User to its public projection.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		GivenName:   user.GivenName,
		LastName:    user.LastName,
		Email:       user.Email,
		Verified:    user.Verified,
		Disabled:    user.Disabled,
		City:        user.City,
		Country:     user.Country,
		Address:     user.Address,
		ZipCode:     user.ZipCode,
		Birthday:    user.Birthday,
		PhonePrefix: user.PhonePrefix,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
}

// adToResponse converts a domain.Ad to its response form.
func adToResponse(ad *domain.Ad) AdResponse {
	return AdResponse{
		GUID:            ad.ID,
		AddedBy:         ad.AddedBy,
		Title:           ad.Title,
		City:            ad.City,
		ZipCode:         ad.ZipCode,
		Description:     ad.Description,
		ValueEstimation: ad.ValueEstimation,
		AdType:          string(ad.AdType),
		CreatedAt:       ad.CreatedAt,
	}
}

// adsToResponse converts a slice of ads, keeping an empty slice over nil
// so list endpoints always serialize to a JSON array.
func adsToResponse(ads []*domain.Ad) []AdResponse {
	out := make([]AdResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, adToResponse(ad))
	}
	return out
}

// requestDetailsToResponse converts resolved request details.
func requestDetailsToResponse(details []*service.RequestDetail) []RequestDetailResponse {
	out := make([]RequestDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, RequestDetailResponse{
			Status:  string(d.Status),
			Ad:      adToResponse(d.Ad),
			AddedBy: userToResponse(d.AdOwner),
		})
	}
	return out
}
