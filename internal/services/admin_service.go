package services

import (
	"context"
	"encoding/json"

	"thimar/internal/api"
	"thimar/internal/envelope"
	apperrors "thimar/internal/errors"
)

const (
	dashboardStatsPath = "admin/dashboard-statistics"
	growthStatsPath    = "admin/growth-statistics"
)

// DashboardStats is the backend's marketplace-wide summary for the admin
// dashboard cards.
type DashboardStats struct {
	TotalUsers         int     `json:"total_users"`
	TotalOpportunities int     `json:"total_opportunities"`
	TotalInvestments   int     `json:"total_investments"`
	TotalInvested      float64 `json:"total_invested"`
	ActiveUsers        int     `json:"active_users"`
	PendingWithdrawals int     `json:"pending_withdrawals"`
}

// GrowthPoint is one month of the growth chart.
type GrowthPoint struct {
	Month       string  `json:"month"`
	Users       int     `json:"users"`
	Investments int     `json:"investments"`
	Volume      float64 `json:"volume"`
}

// GrowthStats is the backend's month-over-month growth series.
type GrowthStats struct {
	Points []GrowthPoint `json:"points"`
}

// adminService is the façade over the backend admin statistics endpoints.
type adminService struct {
	api *api.Client
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(client *api.Client) AdminServicer {
	return &adminService{api: client}
}

// DashboardStats returns the marketplace-wide summary.
func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	raw, err := s.api.Get(ctx, dashboardStatsPath, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}

	var stats DashboardStats
	if err := json.Unmarshal(envelope.Record(raw), &stats); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &stats, nil
}

// GrowthStats returns the month-over-month growth series. The backend may
// ship the series as a bare array or under any of the envelope keys.
func (s *adminService) GrowthStats(ctx context.Context) (*GrowthStats, error) {
	raw, err := s.api.Get(ctx, growthStatsPath, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOperationFailed, err)
	}
	return &GrowthStats{Points: envelope.DecodeList[GrowthPoint](raw)}, nil
}
