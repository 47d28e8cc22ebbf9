package services

import (
	"context"
	"net/http"
	"testing"

	"thimar/internal/pagination"
	"thimar/internal/testutil"
)

func TestOpportunityList_PayloadDataEnvelope(t *testing.T) {
	var gotQuery string
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{"data":[
			{"id":1,"name":"برج الواحة","expected_return":12.5,"status":"active"},
			{"id":2,"name":"مجمع النخيل","expected_return":9.0,"status":"completed"}
		],"meta":{"current_page":1}}}`))
	}), nil))

	opportunities, err := svc.List(context.Background(), OpportunityParams{Search: "برج", CityID: 3})
	testutil.AssertNoError(t, err)

	if len(opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opportunities))
	}
	if opportunities[0].Name != "برج الواحة" || opportunities[1].ID != 2 {
		t.Errorf("unexpected opportunities: %+v", opportunities)
	}
	if gotQuery != "city_id=3&search=%D8%A8%D8%B1%D8%AC" {
		t.Errorf("unexpected query string: %s", gotQuery)
	}
}

func TestOpportunityList_BareArrayEnvelope(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"name":"فرصة"}]`))
	}), nil))

	opportunities, err := svc.List(context.Background(), OpportunityParams{})
	testutil.AssertNoError(t, err)
	if len(opportunities) != 1 || opportunities[0].ID != 7 {
		t.Errorf("unexpected opportunities: %+v", opportunities)
	}
}

func TestOpportunityListPage_DecodesPagingBlock(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payload":{
			"data":[{"id":1,"name":"برج الواحة"},{"id":2,"name":"مجمع النخيل"}],
			"meta":{"current_page":2,"last_page":5,"per_page":2,"total":9},
			"links":{"first":"?page=1","last":"?page=5","next":"?page=3"}
		}}`))
	}), nil))

	page, err := svc.ListPage(context.Background(), OpportunityParams{})
	testutil.AssertNoError(t, err)

	if len(page.Data) != 2 || page.Data[1].ID != 2 {
		t.Fatalf("unexpected page data: %+v", page.Data)
	}
	if page.Meta.CurrentPage != 2 || page.Meta.Total != 9 || page.Meta.LastPage != 5 {
		t.Errorf("unexpected meta: %+v", page.Meta)
	}
	if page.Links.Next == nil || *page.Links.Next != "?page=3" {
		t.Errorf("unexpected links: %+v", page.Links)
	}
}

func TestOpportunityListPage_BareArrayHasZeroPaging(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"name":"فرصة"}]`))
	}), nil))

	page, err := svc.ListPage(context.Background(), OpportunityParams{})
	testutil.AssertNoError(t, err)
	if len(page.Data) != 1 || page.Data[0].ID != 7 {
		t.Errorf("unexpected page data: %+v", page.Data)
	}
	if page.Meta != (pagination.Meta{}) {
		t.Errorf("expected zero meta for a bare array, got %+v", page.Meta)
	}
}

func TestOpportunityGetByID_NotFound(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}), nil))

	_, err := svc.GetByID(context.Background(), 99)
	testutil.AssertAppError(t, err, "OPPORTUNITY_NOT_FOUND")
	testutil.AssertErrorMessage(t, err, "الفرصة غير موجودة")
}

func TestOpportunityCreate_NameTaken(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The name has already been taken.","errors":{"name":["The name has already been taken."]}}`))
	}), nil))

	_, err := svc.Create(context.Background(), OpportunityInput{Name: "برج الواحة"})
	testutil.AssertAppError(t, err, "OPPORTUNITY_NAME_TAKEN")
}

func TestOpportunityCreate_BadReferenceMessage(t *testing.T) {
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The selected developer id is invalid.","errors":{"developer_id":["The selected developer id is invalid."]}}`))
	}), nil))

	_, err := svc.Create(context.Background(), OpportunityInput{Name: "فرصة جديدة", DeveloperID: 42})
	testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	testutil.AssertErrorMessage(t, err, "المطور المحدد غير موجود")
}

func TestOpportunityUpdate_EmptyDegeneratesToGet(t *testing.T) {
	var gotMethod string
	svc := NewOpportunityService(testutil.FakeBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"data":{"id":5,"name":"فرصة"}}`))
	}), nil))

	opp, err := svc.Update(context.Background(), 5, OpportunityUpdate{})
	testutil.AssertNoError(t, err)
	if gotMethod != http.MethodGet {
		t.Errorf("expected an empty update to fetch instead, got %s", gotMethod)
	}
	if opp.ID != 5 {
		t.Errorf("unexpected opportunity: %+v", opp)
	}
}
