package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"thimar/internal/api"
	"thimar/internal/envelope"
	apperrors "thimar/internal/errors"
	"thimar/internal/logger"
	"thimar/internal/models"
	"thimar/internal/session"
)

const (
	loginPath          = "auth/login"
	registerPath       = "auth/register"
	logoutPath         = "auth/logout"
	profilePath        = "auth/profile"
	changePasswordPath = "auth/change-password"
)

// ProfileUpdate holds the self-service profile fields a logged-in user may
// change.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
}

func (u ProfileUpdate) fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*u.Email))
	}
	if u.Avatar != nil {
		fields["avatar"] = *u.Avatar
	}
	return fields
}

// authResponse is the backend's credential payload, possibly nested inside
// a response envelope.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// authService signs users in and out against the backend and mirrors the
// result into the session.
type authService struct {
	api     *api.Client
	session *session.Session
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(client *api.Client, sess *session.Session) AuthServicer {
	return &authService{api: client, session: sess}
}

// Login exchanges phone and password for a token and persists both sides of
// the credential pair. Any rejection surfaces as the one invalid-credentials
// message; the backend's reason is never shown.
func (s *authService) Login(ctx context.Context, phone, password string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingCredentials, nil)
	}

	raw, err := s.api.Post(ctx, loginPath, map[string]string{
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		switch api.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusBadRequest:
			return nil, apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
		default:
			return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
		}
	}

	creds, err := decodeAuthResponse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.session.Login(creds.Token, creds.User); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return creds.User, nil
}

// Register creates an investor account and signs it in immediately.
func (s *authService) Register(ctx context.Context, name, phone, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "الاسم ورقم الهاتف وكلمة المرور مطلوبة")
	}

	raw, err := s.api.Post(ctx, registerPath, map[string]string{
		"name":     name,
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		if api.FieldError(err, "phone") {
			return nil, apperrors.Wrap(apperrors.ErrPhoneTaken, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	creds, err := decodeAuthResponse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.session.Login(creds.Token, creds.User); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return creds.User, nil
}

// Logout clears local credentials first, then tells the backend to revoke
// the token. A failed revocation never blocks the local sign-out.
func (s *authService) Logout(ctx context.Context) error {
	token := s.session.Token()
	if err := s.session.Logout(); err != nil {
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	if token == "" {
		return nil
	}

	if _, err := s.api.Post(ctx, logoutPath, nil); err != nil {
		logger.Get().Warnw("backend logout failed after local sign-out", "error", err)
	}
	return nil
}

// CurrentUser returns the freshest profile the backend will give, falling
// back to the stored record when the backend is unreachable. A 401 means
// the stored credentials were already cleared by the client's handler.
func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, nil)
	}

	raw, err := s.api.Get(ctx, profilePath, nil)
	if err != nil {
		if api.StatusOf(err) == http.StatusUnauthorized {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, err)
		}
		if stored := s.session.User(); stored != nil {
			logger.Get().Warnw("profile fetch failed, serving stored user record", "error", err)
			return stored, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	s.session.UpdateUser(user)
	return user, nil
}

// UpdateProfile applies self-service profile changes and mirrors the
// updated record into the session.
func (s *authService) UpdateProfile(ctx context.Context, input ProfileUpdate) (*models.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, nil)
	}

	fields := input.fields()
	if len(fields) == 0 {
		return s.CurrentUser(ctx)
	}

	raw, err := s.api.Put(ctx, profilePath, fields)
	if err != nil {
		if api.FieldError(err, "email") {
			return nil, apperrors.Wrap(apperrors.ErrEmailTaken, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	s.session.UpdateUser(user)
	return user, nil
}

// ChangePassword swaps the account password. A rejected current password
// maps to the invalid-credentials message.
func (s *authService) ChangePassword(ctx context.Context, current, updated string) error {
	if !s.session.IsAuthenticated() {
		return apperrors.Wrap(apperrors.ErrUnauthorized, nil)
	}
	if current == "" || updated == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "كلمة المرور الحالية والجديدة مطلوبتان")
	}

	_, err := s.api.Post(ctx, changePasswordPath, map[string]string{
		"current_password": current,
		"new_password":     updated,
	})
	if err != nil {
		switch {
		case api.StatusOf(err) == http.StatusUnprocessableEntity,
			api.FieldError(err, "current_password"):
			return apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
		default:
			return apperrors.Wrap(apperrors.ErrOperationFailed, err)
		}
	}
	return nil
}

// decodeAuthResponse unwraps and decodes the token/user pair. A payload
// missing either half is treated as a backend fault.
func decodeAuthResponse(raw json.RawMessage) (*authResponse, error) {
	var creds authResponse
	if err := json.Unmarshal(envelope.Record(raw), &creds); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	if creds.Token == "" || creds.User == nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, nil)
	}
	return &creds, nil
}
