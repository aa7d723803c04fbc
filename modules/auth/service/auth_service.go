package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metra-api/core/cache"
	"metra-api/core/config"
	"metra-api/core/constants"
	"metra-api/core/errors"
	"metra-api/core/logger"
	"metra-api/core/utils"
	"metra-api/modules/auth/dto"
	"metra-api/modules/auth/entity"
	"metra-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthService struct {
	repo  repository.ProfileRepositoryInterface
	cache *cache.Cache
}

func NewAuthService(repo repository.ProfileRepositoryInterface, c *cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: c}
}

// SyncProfile upserts a profile keyed by the auth provider's stable id.
// First sync creates the row with the receiver role; later syncs return the
// existing row unchanged.
func (s *AuthService) SyncProfile(ctx context.Context, req *dto.SyncProfileRequest) (*entity.Profile, error) {
	existing, err := s.repo.GetByAuthID(ctx, req.AuthID)
	if err != nil {
		logger.Error("AuthService:SyncProfile:GetByAuthID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up profile", err)
	}
	if existing != nil {
		return existing, nil
	}

	profile := &entity.Profile{
		AuthID:     req.AuthID,
		Email:      req.Email,
		Name:       req.Name,
		Role:       entity.RoleReceiver,
		Visibility: entity.VisibilityPublic,
		DMAllowed:  true,
	}

	created, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		logger.Error("AuthService:SyncProfile:Upsert:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to sync profile", err)
	}
	return created, nil
}

// GoogleLogin exchanges an OAuth code for the Google user's identity, syncs
// the profile, and issues a token pair.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*dto.SessionResponse, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not loaded", nil)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:GoogleLogin:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthService:GoogleLogin:UserInfo:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to fetch google user info", err)
	}

	profile, err := s.SyncProfile(ctx, &dto.SyncProfileRequest{
		AuthID: "google:" + info.ID,
		Email:  &info.Email,
		Name:   info.Name,
	})
	if err != nil {
		return nil, err
	}

	return s.issueSession(profile)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *AuthService) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google userinfo missing id")
	}
	if info.Name == "" {
		info.Name = info.Email
	}
	return &info, nil
}

func (s *AuthService) issueSession(profile *entity.Profile) (*dto.SessionResponse, error) {
	access, err := utils.GenerateToken(profile.ID, constants.ScopeTokenAccess, constants.AccessTokenTTL)
	if err != nil {
		logger.Error("AuthService:issueSession:AccessToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue access token", err)
	}
	refresh, err := utils.GenerateToken(profile.ID, constants.ScopeTokenRefresh, constants.RefreshTokenTTL)
	if err != nil {
		logger.Error("AuthService:issueSession:RefreshToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue refresh token", err)
	}

	return &dto.SessionResponse{
		Profile:      dto.ToProfileResponse(profile),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Logout blacklists the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	if s.cache == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.cache.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:BlacklistToken:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

// GetProfile returns a profile by id.
func (s *AuthService) GetProfile(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load profile", err)
	}
	if profile == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "profile not found", nil)
	}
	return profile, nil
}

// UpdateProfile applies the owner's partial update.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*entity.Profile, error) {
	if req.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no fields to update", nil)
	}

	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		if !role.Valid() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid role", nil)
		}
		profile.Role = role
	}
	if req.Visibility != nil {
		visibility := entity.Visibility(*req.Visibility)
		if !visibility.Valid() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid visibility", nil)
		}
		profile.Visibility = visibility
	}
	if req.DMAllowed != nil {
		profile.DMAllowed = *req.DMAllowed
	}
	if req.PostalCode != nil {
		profile.PostalCode = req.PostalCode
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update profile", err)
	}
	return profile, nil
}
