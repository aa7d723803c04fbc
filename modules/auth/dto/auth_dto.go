package dto

import (
	"time"

	"metra-api/modules/auth/entity"
)

// ===================== Request DTOs =====================

// SyncProfileRequest is the payload the auth provider posts after sign-in.
type SyncProfileRequest struct {
	AuthID string  `json:"auth_id" validate:"required"`
	Email  *string `json:"email"`
	Name   string  `json:"name" validate:"required"`
}

// GoogleLoginRequest exchanges an OAuth authorization code for a session.
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// UpdateProfileRequest carries the owner-mutable profile fields.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role" validate:"omitempty,oneof=donor receiver org"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=public private limited"`
	DMAllowed  *bool   `json:"dm_allowed"`
	PostalCode *string `json:"postal_code"`
}

func (r *UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.Role == nil && r.Visibility == nil &&
		r.DMAllowed == nil && r.PostalCode == nil
}

// ===================== Response DTOs =====================

type ProfileResponse struct {
	ID         string    `json:"id"`
	AuthID     string    `json:"auth_id"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Visibility string    `json:"visibility"`
	DMAllowed  bool      `json:"dm_allowed"`
	PostalCode string    `json:"postal_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionResponse struct {
	Profile      ProfileResponse `json:"profile"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

func ToProfileResponse(p *entity.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID.String(),
		AuthID:     p.AuthID,
		Name:       p.Name,
		Role:       string(p.Role),
		Visibility: string(p.Visibility),
		DMAllowed:  p.DMAllowed,
		CreatedAt:  p.CreatedAt,
	}
	if p.Email != nil {
		resp.Email = *p.Email
	}
	if p.PostalCode != nil {
		resp.PostalCode = *p.PostalCode
	}
	return resp
}
