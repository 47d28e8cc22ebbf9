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

const developersPath = "investment/developers"

const maxDeveloperDescription = 500

// DeveloperParams holds the filters accepted by the developer list endpoint.
type DeveloperParams struct {
	pagination.PageRequest
	Search string
}

func (p DeveloperParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	return values
}

// DeveloperInput holds the fields for creating or updating a developer.
type DeveloperInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Description string `json:"description,omitempty"`
}

// normalize trims all fields and lowercases the email. Client-side
// convenience only; the backend still validates.
func (in *DeveloperInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Description = strings.TrimSpace(in.Description)
}

// validate blocks submissions the backend is known to reject.
func (in *DeveloperInput) validate() error {
	if len([]rune(in.Name)) < 2 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "اسم المطور يجب أن يكون حرفين على الأقل")
	}
	if len([]rune(in.Description)) > maxDeveloperDescription {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "الوصف يجب ألا يتجاوز 500 حرف")
	}
	return nil
}

// developerService is the façade over the backend developer endpoints.
type developerService struct {
	api *api.Client
}

// NewDeveloperService creates a new DeveloperServicer.
func NewDeveloperService(client *api.Client) DeveloperServicer {
	return &developerService{api: client}
}

// List returns the normalized developer list.
func (s *developerService) List(ctx context.Context, params DeveloperParams) ([]models.Developer, error) {
	raw, err := s.api.Get(ctx, developersPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.Developer](raw), nil
}

// GetByID fetches one developer. A backend 404 maps to ErrDeveloperNotFound.
func (s *developerService) GetByID(ctx context.Context, id uint) (*models.Developer, error) {
	raw, err := s.api.Get(ctx, developersPath+"/"+strconv.FormatUint(uint64(id), 10), nil)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrDeveloperNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeDeveloper(raw)
}

// Create creates a developer from normalized fields.
func (s *developerService) Create(ctx context.Context, input DeveloperInput) (*models.Developer, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	raw, err := s.api.Post(ctx, developersPath, input)
	if err != nil {
		if api.FieldError(err, "name") {
			return nil, apperrors.Wrap(apperrors.ErrDeveloperExists, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeDeveloper(raw)
}

// Update replaces a developer's fields.
func (s *developerService) Update(ctx context.Context, id uint, input DeveloperInput) (*models.Developer, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	raw, err := s.api.Put(ctx, developersPath+"/"+strconv.FormatUint(uint64(id), 10), input)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrDeveloperNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeDeveloper(raw)
}

// Delete removes a developer. A 404 is a domain error, not a success.
func (s *developerService) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, developersPath+"/"+strconv.FormatUint(uint64(id), 10)); err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return apperrors.Wrap(apperrors.ErrDeveloperNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return nil
}

func decodeDeveloper(raw json.RawMessage) (*models.Developer, error) {
	var dev models.Developer
	if err := json.Unmarshal(envelope.Record(raw), &dev); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &dev, nil
}
