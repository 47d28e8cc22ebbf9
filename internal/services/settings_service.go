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

const (
	citiesPath     = "investment/cities"
	assetTypesPath = "investment/asset-types"
)

// LookupParams holds the filters shared by the city and asset-type lists.
type LookupParams struct {
	pagination.PageRequest
	Search string
}

func (p LookupParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	return values
}

type lookupInput struct {
	Name string `json:"name"`
}

// cityService is the façade over the backend city endpoints.
type cityService struct {
	api *api.Client
}

// NewCityService creates a new CityServicer.
func NewCityService(client *api.Client) CityServicer {
	return &cityService{api: client}
}

func (s *cityService) List(ctx context.Context, params LookupParams) ([]models.City, error) {
	raw, err := s.api.Get(ctx, citiesPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.City](raw), nil
}

func (s *cityService) Create(ctx context.Context, name string) (*models.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "اسم المدينة مطلوب")
	}

	raw, err := s.api.Post(ctx, citiesPath, lookupInput{Name: name})
	if err != nil {
		if api.FieldError(err, "name") {
			return nil, apperrors.Wrap(apperrors.ErrCityExists, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeCity(raw)
}

func (s *cityService) Update(ctx context.Context, id uint, name string) (*models.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "اسم المدينة مطلوب")
	}

	raw, err := s.api.Put(ctx, citiesPath+"/"+strconv.FormatUint(uint64(id), 10), lookupInput{Name: name})
	if err != nil {
		switch {
		case api.StatusOf(err) == http.StatusNotFound:
			return nil, apperrors.Wrap(apperrors.ErrCityNotFound, err)
		case api.FieldError(err, "name"):
			return nil, apperrors.Wrap(apperrors.ErrCityExists, err)
		default:
			return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
		}
	}
	return decodeCity(raw)
}

func (s *cityService) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, citiesPath+"/"+strconv.FormatUint(uint64(id), 10)); err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return apperrors.Wrap(apperrors.ErrCityNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return nil
}

func decodeCity(raw json.RawMessage) (*models.City, error) {
	var city models.City
	if err := json.Unmarshal(envelope.Record(raw), &city); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &city, nil
}

// assetTypeService is the façade over the backend asset-type endpoints.
type assetTypeService struct {
	api *api.Client
}

// NewAssetTypeService creates a new AssetTypeServicer.
func NewAssetTypeService(client *api.Client) AssetTypeServicer {
	return &assetTypeService{api: client}
}

func (s *assetTypeService) List(ctx context.Context, params LookupParams) ([]models.AssetType, error) {
	raw, err := s.api.Get(ctx, assetTypesPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.AssetType](raw), nil
}

func (s *assetTypeService) Create(ctx context.Context, name string) (*models.AssetType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "اسم نوع الأصل مطلوب")
	}

	raw, err := s.api.Post(ctx, assetTypesPath, lookupInput{Name: name})
	if err != nil {
		if api.FieldError(err, "name") {
			return nil, apperrors.Wrap(apperrors.ErrAssetTypeExists, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeAssetType(raw)
}

func (s *assetTypeService) Update(ctx context.Context, id uint, name string) (*models.AssetType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "اسم نوع الأصل مطلوب")
	}

	raw, err := s.api.Put(ctx, assetTypesPath+"/"+strconv.FormatUint(uint64(id), 10), lookupInput{Name: name})
	if err != nil {
		switch {
		case api.StatusOf(err) == http.StatusNotFound:
			return nil, apperrors.Wrap(apperrors.ErrAssetTypeNotFound, err)
		case api.FieldError(err, "name"):
			return nil, apperrors.Wrap(apperrors.ErrAssetTypeExists, err)
		default:
			return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
		}
	}
	return decodeAssetType(raw)
}

func (s *assetTypeService) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, assetTypesPath+"/"+strconv.FormatUint(uint64(id), 10)); err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return apperrors.Wrap(apperrors.ErrAssetTypeNotFound, err)
		}
		return apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return nil
}

func decodeAssetType(raw json.RawMessage) (*models.AssetType, error) {
	var at models.AssetType
	if err := json.Unmarshal(envelope.Record(raw), &at); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &at, nil
}
