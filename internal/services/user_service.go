package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"thimar/internal/api"
	"thimar/internal/envelope"
	apperrors "thimar/internal/errors"
	"thimar/internal/models"
	"thimar/internal/pagination"
)

const usersPath = "investment/users"

// UserParams holds the filters accepted by the user list endpoint.
type UserParams struct {
	pagination.PageRequest
	Search string
	Type   models.UserType
	Status models.UserStatus
}

func (p UserParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Type != "" {
		values.Set("type", string(p.Type))
	}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	return values
}

// UserInput holds the fields for creating a user.
type UserInput struct {
	Name     string            `json:"name"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone"`
	Password string            `json:"password"`
	Type     models.UserType   `json:"type"`
	Status   models.UserStatus `json:"status,omitempty"`
}

func (in *UserInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

// UserUpdate holds the optional fields for a partial user update.
type UserUpdate struct {
	Name   *string
	Email  *string
	Phone  *string
	Type   *models.UserType
	Status *models.UserStatus
	Avatar *string
}

func (u UserUpdate) fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*u.Email))
	}
	if u.Phone != nil {
		fields["phone"] = strings.TrimSpace(*u.Phone)
	}
	if u.Type != nil {
		fields["type"] = *u.Type
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.Avatar != nil {
		fields["avatar"] = *u.Avatar
	}
	return fields
}

// userService is the façade over the backend user administration endpoints.
type userService struct {
	api *api.Client
}

// NewUserService creates a new UserServicer.
func NewUserService(client *api.Client) UserServicer {
	return &userService{api: client}
}

// List returns the normalized user list.
func (s *userService) List(ctx context.Context, params UserParams) ([]models.User, error) {
	raw, err := s.api.Get(ctx, usersPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.User](raw), nil
}

// GetByID fetches one user. A backend 404 maps to ErrUserNotFound.
func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	raw, err := s.api.Get(ctx, usersPath+"/"+strconv.FormatUint(uint64(id), 10), nil)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrUserNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeUser(raw)
}

// GetByPhone looks a user up by exact phone number. The backend's search
// endpoint may wrap the match in any list envelope, so the lookup goes
// through the normalizer and takes the first record.
func (s *userService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "رقم الهاتف مطلوب")
	}

	query := url.Values{}
	query.Set("phone", phone)
	raw, err := s.api.Get(ctx, usersPath+"/search", query)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrUserNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	users := envelope.DecodeList[models.User](raw)
	if len(users) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrUserNotFound, nil)
	}
	return &users[0], nil
}

// Create creates a user from normalized fields.
func (s *userService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	input.normalize()
	if input.Name == "" || input.Phone == "" || input.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "الاسم ورقم الهاتف وكلمة المرور مطلوبة")
	}

	raw, err := s.api.Post(ctx, usersPath, input)
	if err != nil {
		return nil, translateUserError(err)
	}
	return decodeUser(raw)
}

// Update applies a partial update. An empty update degenerates to GetByID.
func (s *userService) Update(ctx context.Context, id uint, input UserUpdate) (*models.User, error) {
	fields := input.fields()
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	raw, err := s.api.Put(ctx, usersPath+"/"+strconv.FormatUint(uint64(id), 10), fields)
	if err != nil {
		return nil, translateUserError(err)
	}
	return decodeUser(raw)
}

// Delete removes a user. A 404 is a domain error, not a success.
func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, usersPath+"/"+strconv.FormatUint(uint64(id), 10)); err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return apperrors.Wrap(apperrors.ErrUserNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return nil
}

func decodeUser(raw json.RawMessage) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(envelope.Record(raw), &user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &user, nil
}

// translateUserError maps backend write failures to one fixed localized
// message per field.
func translateUserError(err error) error {
	switch {
	case api.StatusOf(err) == http.StatusNotFound:
		return apperrors.Wrap(apperrors.ErrUserNotFound, err)
	case api.FieldError(err, "phone"):
		return apperrors.Wrap(apperrors.ErrPhoneTaken, err)
	case api.FieldError(err, "email"):
		return apperrors.Wrap(apperrors.ErrEmailTaken, err)
	default:
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
}
