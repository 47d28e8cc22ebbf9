package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"thimar/internal/testutil"
)

func TestFetch_DecodesRecommendations(t *testing.T) {
	var gotAuth string
	var gotBody Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[{"opportunity_name":"برج الواحة","asset_type":"سكني","city":"الرياض","expected_return":12.5,"risk_level":"متوسط","justification":"عائد مرتفع"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "engine-key", srv.Client())
	recs, err := client.Fetch(context.Background(), Request{
		UserPreferences: "عقارات سكنية",
		MarketTrends:    "نمو في الرياض",
	})
	testutil.AssertNoError(t, err)

	if gotAuth != "Bearer engine-key" {
		t.Errorf("expected bearer key, got %q", gotAuth)
	}
	if gotBody.UserPreferences != "عقارات سكنية" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if len(recs) != 1 || recs[0].OpportunityName != "برج الواحة" || recs[0].ExpectedReturn != 12.5 {
		t.Errorf("unexpected recommendations: %+v", recs)
	}
}

func TestFetch_AcceptsBareList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"opportunity_name":"مجمع النخيل"}]`))
	}))
	defer srv.Close()

	recs, err := NewClient(srv.URL, "", srv.Client()).Fetch(context.Background(), Request{})
	testutil.AssertNoError(t, err)
	if len(recs) != 1 || recs[0].OpportunityName != "مجمع النخيل" {
		t.Errorf("unexpected recommendations: %+v", recs)
	}
}

func TestFetch_EngineFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", srv.Client()).Fetch(context.Background(), Request{})
	testutil.AssertAppError(t, err, "OPERATION_FAILED")
}
