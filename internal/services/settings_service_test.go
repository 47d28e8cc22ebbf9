package services

import (
	"context"
	"net/http"
	"testing"

	"thimar/internal/testutil"
)

func TestCityCreate_Duplicate(t *testing.T) {
	svc := NewCityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The name has already been taken.","errors":{"name":["The name has already been taken."]}}`))
	}), nil))

	_, err := svc.Create(context.Background(), "الرياض")
	testutil.AssertAppError(t, err, "CITY_EXISTS")
	testutil.AssertErrorMessage(t, err, "هذه المدينة موجودة بالفعل")
}

func TestCityCreate_RequiresName(t *testing.T) {
	svc := NewCityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	}), nil))

	_, err := svc.Create(context.Background(), "   ")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestCityList_DataEnvelope(t *testing.T) {
	svc := NewCityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"الرياض"},{"id":2,"name":"جدة"}]}`))
	}), nil))

	cities, err := svc.List(context.Background(), LookupParams{})
	testutil.AssertNoError(t, err)
	if len(cities) != 2 || cities[1].Name != "جدة" {
		t.Errorf("unexpected cities: %+v", cities)
	}
}

func TestAssetTypeUpdate_NotFound(t *testing.T) {
	svc := NewAssetTypeService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}), nil))

	_, err := svc.Update(context.Background(), 9, "تجاري")
	testutil.AssertAppError(t, err, "ASSET_TYPE_NOT_FOUND")
}

func TestDeveloperCreate_ValidatesLocally(t *testing.T) {
	svc := NewDeveloperService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	}), nil))

	_, err := svc.Create(context.Background(), DeveloperInput{Name: "م", Email: "dev@example.com", Phone: "0551234567"})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
