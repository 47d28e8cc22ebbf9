// Package services holds the resource façades: thin CRUD wrappers that trim
// and normalize inputs, route list responses through the envelope
// normalizer, and translate backend validation/conflict signals into fixed
// localized messages. Façades never expose a backend-raw payload.
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

const opportunitiesPath = "investment/opportunities"

// OpportunityParams holds the filters accepted by the opportunity list endpoint.
type OpportunityParams struct {
	pagination.PageRequest
	Search      string
	Status      models.OpportunityStatus
	CityID      uint
	AssetTypeID uint
	DeveloperID uint
}

func (p OpportunityParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	if p.CityID != 0 {
		values.Set("city_id", strconv.FormatUint(uint64(p.CityID), 10))
	}
	if p.AssetTypeID != 0 {
		values.Set("asset_type_id", strconv.FormatUint(uint64(p.AssetTypeID), 10))
	}
	if p.DeveloperID != 0 {
		values.Set("developer_id", strconv.FormatUint(uint64(p.DeveloperID), 10))
	}
	return values
}

// OpportunityInput holds the fields for creating an opportunity.
type OpportunityInput struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	ExpectedReturn float64                  `json:"expected_return"`
	Duration       string                   `json:"duration"`
	Funded         float64                  `json:"funded"`
	Status         models.OpportunityStatus `json:"status"`
	DeveloperID    uint                     `json:"developer_id"`
	CityID         uint                     `json:"city_id"`
	AssetTypeID    uint                     `json:"asset_type_id"`
	ImageIDs       []string                 `json:"image_ids,omitempty"`
}

// OpportunityUpdate holds the optional fields for a partial update.
// Nil fields are omitted from the request entirely.
type OpportunityUpdate struct {
	Name           *string
	Description    *string
	ExpectedReturn *float64
	Duration       *string
	Funded         *float64
	Status         *models.OpportunityStatus
	DeveloperID    *uint
	CityID         *uint
	AssetTypeID    *uint
	ImageIDs       []string
}

func (u OpportunityUpdate) fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		fields["description"] = strings.TrimSpace(*u.Description)
	}
	if u.ExpectedReturn != nil {
		fields["expected_return"] = *u.ExpectedReturn
	}
	if u.Duration != nil {
		fields["duration"] = strings.TrimSpace(*u.Duration)
	}
	if u.Funded != nil {
		fields["funded"] = *u.Funded
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.DeveloperID != nil {
		fields["developer_id"] = *u.DeveloperID
	}
	if u.CityID != nil {
		fields["city_id"] = *u.CityID
	}
	if u.AssetTypeID != nil {
		fields["asset_type_id"] = *u.AssetTypeID
	}
	if u.ImageIDs != nil {
		fields["image_ids"] = u.ImageIDs
	}
	return fields
}

// opportunityService is the façade over the backend opportunity endpoints.
type opportunityService struct {
	api *api.Client
}

// NewOpportunityService creates a new OpportunityServicer.
func NewOpportunityService(client *api.Client) OpportunityServicer {
	return &opportunityService{api: client}
}

// List returns the normalized opportunity list for the given filters.
func (s *opportunityService) List(ctx context.Context, params OpportunityParams) ([]models.Opportunity, error) {
	raw, err := s.api.Get(ctx, opportunitiesPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.Opportunity](raw), nil
}

// ListPage returns the normalized list together with the backend's Laravel
// paging block. Envelopes without meta still yield the data with zero paging.
func (s *opportunityService) ListPage(ctx context.Context, params OpportunityParams) (*pagination.Page[models.Opportunity], error) {
	raw, err := s.api.Get(ctx, opportunitiesPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	meta, links := pagination.DecodePaging(raw)
	page := pagination.NewPage(envelope.DecodeList[models.Opportunity](raw), meta, links)
	return &page, nil
}

// GetByID fetches one opportunity. A backend 404 maps to ErrOpportunityNotFound.
func (s *opportunityService) GetByID(ctx context.Context, id uint) (*models.Opportunity, error) {
	raw, err := s.api.Get(ctx, opportunitiesPath+"/"+strconv.FormatUint(uint64(id), 10), nil)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrOpportunityNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeOpportunity(raw)
}

// Create creates an opportunity from trimmed fields.
func (s *opportunityService) Create(ctx context.Context, input OpportunityInput) (*models.Opportunity, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Duration = strings.TrimSpace(input.Duration)

	raw, err := s.api.Post(ctx, opportunitiesPath, input)
	if err != nil {
		return nil, translateOpportunityError(err)
	}
	return decodeOpportunity(raw)
}

// Update applies a partial update. An empty update degenerates to GetByID.
func (s *opportunityService) Update(ctx context.Context, id uint, input OpportunityUpdate) (*models.Opportunity, error) {
	fields := input.fields()
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	raw, err := s.api.Put(ctx, opportunitiesPath+"/"+strconv.FormatUint(uint64(id), 10), fields)
	if err != nil {
		return nil, translateOpportunityError(err)
	}
	return decodeOpportunity(raw)
}

// Delete removes an opportunity. A 404 is a domain error, not a success.
func (s *opportunityService) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, opportunitiesPath+"/"+strconv.FormatUint(uint64(id), 10)); err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return apperrors.Wrap(apperrors.ErrOpportunityNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return nil
}

func decodeOpportunity(raw json.RawMessage) (*models.Opportunity, error) {
	var opp models.Opportunity
	if err := json.Unmarshal(envelope.Record(raw), &opp); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &opp, nil
}

// translateOpportunityError maps backend write failures to one fixed
// localized message per field.
func translateOpportunityError(err error) error {
	switch {
	case api.StatusOf(err) == http.StatusNotFound:
		return apperrors.Wrap(apperrors.ErrOpportunityNotFound, err)
	case api.FieldError(err, "name"):
		return apperrors.Wrap(apperrors.ErrOpportunityNameTaken, err)
	case api.FieldError(err, "developer_id"):
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidReference, "المطور المحدد غير موجود"), err)
	case api.FieldError(err, "city_id"):
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidReference, "المدينة المحددة غير موجودة"), err)
	case api.FieldError(err, "asset_type_id"):
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidReference, "نوع الأصل المحدد غير موجود"), err)
	default:
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
}
