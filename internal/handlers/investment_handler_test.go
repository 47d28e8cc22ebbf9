package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "thimar/internal/errors"
	"thimar/internal/models"
	"thimar/internal/services"
	"thimar/internal/validator"
	"thimar/internal/wizard"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

type stubInvestments struct {
	mu      sync.Mutex
	created int
	failErr error
}

func (s *stubInvestments) Create(ctx context.Context, input services.InvestmentInput) (*models.UserInvestment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	s.created++
	return &models.UserInvestment{ID: uint(100 + s.created), UserID: input.UserID, OpportunityID: input.OpportunityID, Amount: input.Amount}, nil
}

func (s *stubInvestments) List(ctx context.Context, params services.InvestmentParams) ([]models.UserInvestment, error) {
	return []models.UserInvestment{{ID: 1, UserID: params.UserID, Amount: 5000, Status: "in progress"}}, nil
}

func (s *stubInvestments) UpdateStatus(ctx context.Context, id uint, status string) (*models.UserInvestment, error) {
	return &models.UserInvestment{ID: id, Status: status}, nil
}

func (s *stubInvestments) Statistics(ctx context.Context, userID uint) (*services.InvestmentStatistics, error) {
	return &services.InvestmentStatistics{TotalInvested: 25000, ActiveInvestments: 2}, nil
}

type stubTransactions struct{}

func (s *stubTransactions) Create(ctx context.Context, input services.TransactionInput) (*models.Transaction, error) {
	return &models.Transaction{ID: 1, UserID: input.UserID, Type: models.TransactionTypeInvestment, Amount: input.Amount, Status: models.TransactionStatusCompleted}, nil
}

func (s *stubTransactions) Statistics(ctx context.Context, userID uint) (*services.TransactionStatistics, error) {
	return &services.TransactionStatistics{TotalDeposits: 1000, TotalWithdrawals: 200, Balance: 800}, nil
}

func (s *stubTransactions) List(ctx context.Context, params services.TransactionParams) ([]models.Transaction, error) {
	return []models.Transaction{
		{ID: 1, UserID: params.UserID, Type: models.TransactionTypeDeposit, Amount: 1000, Status: models.TransactionStatusCompleted},
		{ID: 2, UserID: params.UserID, Type: models.TransactionTypeWithdrawal, Amount: 200, Status: models.TransactionStatusPending},
	}, nil
}

func setupInvestmentRouter(inv services.InvestmentServicer, tx services.TransactionServicer) *gin.Engine {
	h := NewInvestmentHandler(inv, tx, wizard.NewRegistry(inv, tx))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uint(7))
		c.Next()
	})
	invest := r.Group("/opportunities/:id/invest")
	invest.GET("", h.WizardState)
	invest.POST("/amount", h.WizardSetAmount)
	invest.POST("/terms", h.WizardAgree)
	invest.POST("/continue", h.WizardContinue)
	r.GET("/wallet/transactions", h.ListMyTransactions)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWizardFlow_EndToEnd(t *testing.T) {
	inv := &stubInvestments{}
	r := setupInvestmentRouter(inv, &stubTransactions{})

	rec := postJSON(t, r, "/opportunities/42/invest/amount", gin.H{"amount": 500})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a sub-minimum amount, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, r, "/opportunities/42/invest/amount", gin.H{"amount": 5000})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting the amount, got %d: %s", rec.Code, rec.Body.String())
	}

	// Advance past the amount step, then try to continue without agreeing.
	postJSON(t, r, "/opportunities/42/invest/continue", nil)
	rec = postJSON(t, r, "/opportunities/42/invest/continue", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without agreement, got %d", rec.Code)
	}

	postJSON(t, r, "/opportunities/42/invest/terms", gin.H{"agreed": true})
	postJSON(t, r, "/opportunities/42/invest/continue", nil)
	rec = postJSON(t, r, "/opportunities/42/invest/continue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected the submission to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Wizard struct {
			Step   string               `json:"step"`
			Result *wizard.Confirmation `json:"result"`
		} `json:"wizard"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Wizard.Step != "confirmation" || body.Wizard.Result == nil || body.Wizard.Result.Amount != 5000 {
		t.Errorf("unexpected wizard state: %+v", body.Wizard)
	}

	// A repeated trigger after confirmation must not book again.
	postJSON(t, r, "/opportunities/42/invest/continue", nil)
	if inv.created != 1 {
		t.Errorf("expected exactly one booking, got %d", inv.created)
	}
}

func TestWizardContinue_DuplicateInvestment(t *testing.T) {
	inv := &stubInvestments{failErr: apperrors.Wrap(apperrors.ErrDuplicateInvestment, nil)}
	r := setupInvestmentRouter(inv, &stubTransactions{})

	postJSON(t, r, "/opportunities/42/invest/amount", gin.H{"amount": 5000})
	postJSON(t, r, "/opportunities/42/invest/continue", nil)
	postJSON(t, r, "/opportunities/42/invest/terms", gin.H{"agreed": true})
	postJSON(t, r, "/opportunities/42/invest/continue", nil)
	rec := postJSON(t, r, "/opportunities/42/invest/continue", nil)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate, got %d", rec.Code)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["error"]["message"] != "لديك استثمار موجود في هذه الفرصة بالفعل" {
		t.Errorf("unexpected error payload: %v", body)
	}
}

func TestListMyTransactions_AttachesLabels(t *testing.T) {
	r := setupInvestmentRouter(&stubInvestments{}, &stubTransactions{})

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions", http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Transactions []TransactionView `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(body.Transactions))
	}
	first := body.Transactions[0]
	if first.TypeLabel != "إيداع" || first.StatusLabel != "مكتمل" || !first.Credit {
		t.Errorf("unexpected labels: %+v", first)
	}
	second := body.Transactions[1]
	if second.TypeLabel != "سحب" || second.StatusLabel != "قيد المعالجة" || second.Credit {
		t.Errorf("unexpected labels: %+v", second)
	}
}
