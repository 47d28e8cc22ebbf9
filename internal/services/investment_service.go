package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"thimar/internal/api"
	"thimar/internal/envelope"
	apperrors "thimar/internal/errors"
	"thimar/internal/models"
	"thimar/internal/pagination"
)

const (
	investmentsPath           = "investment/user-investments"
	investmentStatisticsPath  = "investment/user-investments-statistics"
	transactionsPath          = "investment/transactions"
	transactionStatisticsPath = "investment/transactions/statistics"
)

// duplicateSignal is the backend's free-text marker for a repeated
// investment in the same opportunity. Some backend versions return it with
// a 422 instead of a 409, so the message is checked alongside the status.
const duplicateSignal = "استثمار مكرر"

// InvestmentParams holds the filters accepted by the investment list endpoint.
type InvestmentParams struct {
	pagination.PageRequest
	UserID        uint
	OpportunityID uint
	Status        string
}

func (p InvestmentParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.UserID != 0 {
		values.Set("user_id", strconv.FormatUint(uint64(p.UserID), 10))
	}
	if p.OpportunityID != 0 {
		values.Set("opportunity_id", strconv.FormatUint(uint64(p.OpportunityID), 10))
	}
	if p.Status != "" {
		values.Set("status", p.Status)
	}
	return values
}

// InvestmentInput holds the fields for creating an investment. ClientRef,
// when set, is sent as the idempotency reference so a retried submission
// cannot double-book.
type InvestmentInput struct {
	UserID        uint    `json:"user_id"`
	OpportunityID uint    `json:"opportunity_id"`
	Amount        float64 `json:"amount"`
	ClientRef     string  `json:"-"`
}

// InvestmentStatistics is the backend's per-user portfolio summary.
type InvestmentStatistics struct {
	TotalInvested     float64 `json:"total_invested"`
	TotalProfit       float64 `json:"total_profit"`
	ActiveInvestments int     `json:"active_investments"`
	TotalInvestments  int     `json:"total_investments"`
}

// investmentService is the façade over the backend user-investment endpoints.
type investmentService struct {
	api *api.Client
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(client *api.Client) InvestmentServicer {
	return &investmentService{api: client}
}

// List returns the normalized investment list for the given filters.
func (s *investmentService) List(ctx context.Context, params InvestmentParams) ([]models.UserInvestment, error) {
	raw, err := s.api.Get(ctx, investmentsPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.UserInvestment](raw), nil
}

// Create books an investment. Duplicate stakes and vanished opportunities
// map to their own localized errors; everything else is the generic
// investment failure.
func (s *investmentService) Create(ctx context.Context, input InvestmentInput) (*models.UserInvestment, error) {
	var (
		raw json.RawMessage
		err error
	)
	if input.ClientRef != "" {
		raw, err = s.api.PostIdempotent(ctx, investmentsPath, input, input.ClientRef)
	} else {
		raw, err = s.api.Post(ctx, investmentsPath, input)
	}
	if err != nil {
		return nil, translateInvestmentError(err)
	}
	return decodeInvestment(raw)
}

// UpdateStatus sets the backend-defined free-text status of an investment.
func (s *investmentService) UpdateStatus(ctx context.Context, id uint, status string) (*models.UserInvestment, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "حالة الاستثمار مطلوبة")
	}

	raw, err := s.api.Put(ctx, investmentsPath+"/"+strconv.FormatUint(uint64(id), 10), map[string]any{"status": status})
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return decodeInvestment(raw)
}

// Statistics returns the portfolio summary for one user.
func (s *investmentService) Statistics(ctx context.Context, userID uint) (*InvestmentStatistics, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatUint(uint64(userID), 10))

	raw, err := s.api.Get(ctx, investmentStatisticsPath, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	var stats InvestmentStatistics
	if err := json.Unmarshal(envelope.Record(raw), &stats); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &stats, nil
}

func decodeInvestment(raw json.RawMessage) (*models.UserInvestment, error) {
	var inv models.UserInvestment
	if err := json.Unmarshal(envelope.Record(raw), &inv); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &inv, nil
}

// translateInvestmentError maps an investment booking failure to a fixed
// localized message. The duplicate signal is detected by status and by the
// backend's message text, since not every backend version uses 409.
func translateInvestmentError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusConflict,
			strings.Contains(apiErr.Message, duplicateSignal):
			return apperrors.Wrap(apperrors.ErrDuplicateInvestment, err)
		case apiErr.StatusCode == http.StatusNotFound,
			apiErr.HasFieldError("opportunity_id"):
			return apperrors.Wrap(apperrors.ErrOpportunityUnavailable, err)
		}
	}
	return apperrors.Wrap(apperrors.ErrInvestmentFailed, err)
}

// TransactionParams holds the filters accepted by the transaction list endpoint.
type TransactionParams struct {
	pagination.PageRequest
	UserID uint
	Type   models.TransactionType
	Status models.TransactionStatus
}

func (p TransactionParams) values() url.Values {
	values := url.Values{}
	p.PageRequest.Apply(values)
	if p.UserID != 0 {
		values.Set("user_id", strconv.FormatUint(uint64(p.UserID), 10))
	}
	if p.Type != "" {
		values.Set("type", string(p.Type))
	}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	return values
}

// TransactionInput holds the fields for recording a wallet transaction.
// Type and Status accept either the canonical value or its Arabic display
// label; both are parsed before transmission. An empty status defaults to
// completed and an empty date to the current time.
type TransactionInput struct {
	UserID uint    `json:"user_id"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Status string  `json:"status,omitempty"`
	Date   string  `json:"date,omitempty"`
}

// TransactionStatistics is the backend's per-user wallet summary.
type TransactionStatistics struct {
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	Balance          float64 `json:"balance"`
}

// transactionService is the façade over the backend transaction endpoints.
type transactionService struct {
	api *api.Client
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(client *api.Client) TransactionServicer {
	return &transactionService{api: client}
}

// List returns the normalized transaction list for the given filters.
func (s *transactionService) List(ctx context.Context, params TransactionParams) ([]models.Transaction, error) {
	raw, err := s.api.Get(ctx, transactionsPath, params.values())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return envelope.DecodeList[models.Transaction](raw), nil
}

// Create records a wallet transaction with canonicalized type and status.
func (s *transactionService) Create(ctx context.Context, input TransactionInput) (*models.Transaction, error) {
	txType := models.ParseTransactionType(input.Type)
	switch txType {
	case models.TransactionTypeDeposit, models.TransactionTypeWithdrawal,
		models.TransactionTypeInvestment, models.TransactionTypeRefund:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "نوع المعاملة غير صحيح")
	}

	status := models.TransactionStatusCompleted
	if input.Status != "" {
		status = models.ParseTransactionStatus(input.Status)
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(time.RFC3339)
	}

	body := map[string]any{
		"user_id": input.UserID,
		"type":    txType,
		"amount":  input.Amount,
		"status":  status,
		"date":    date,
	}
	raw, err := s.api.Post(ctx, transactionsPath, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	var tx models.Transaction
	if err := json.Unmarshal(envelope.Record(raw), &tx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &tx, nil
}

// Statistics returns the wallet summary for one user.
func (s *transactionService) Statistics(ctx context.Context, userID uint) (*TransactionStatistics, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatUint(uint64(userID), 10))

	raw, err := s.api.Get(ctx, transactionStatisticsPath, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	var stats TransactionStatistics
	if err := json.Unmarshal(envelope.Record(raw), &stats); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &stats, nil
}
