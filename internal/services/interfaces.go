package services

import (
	"context"

	"thimar/internal/models"
	"thimar/internal/pagination"
)

// OpportunityServicer defines the contract for opportunity operations.
type OpportunityServicer interface {
	List(ctx context.Context, params OpportunityParams) ([]models.Opportunity, error)
	ListPage(ctx context.Context, params OpportunityParams) (*pagination.Page[models.Opportunity], error)
	GetByID(ctx context.Context, id uint) (*models.Opportunity, error)
	Create(ctx context.Context, input OpportunityInput) (*models.Opportunity, error)
	Update(ctx context.Context, id uint, input OpportunityUpdate) (*models.Opportunity, error)
	Delete(ctx context.Context, id uint) error
}

// DeveloperServicer defines the contract for developer operations.
type DeveloperServicer interface {
	List(ctx context.Context, params DeveloperParams) ([]models.Developer, error)
	GetByID(ctx context.Context, id uint) (*models.Developer, error)
	Create(ctx context.Context, input DeveloperInput) (*models.Developer, error)
	Update(ctx context.Context, id uint, input DeveloperInput) (*models.Developer, error)
	Delete(ctx context.Context, id uint) error
}

// CityServicer defines the contract for city lookup operations.
type CityServicer interface {
	List(ctx context.Context, params LookupParams) ([]models.City, error)
	Create(ctx context.Context, name string) (*models.City, error)
	Update(ctx context.Context, id uint, name string) (*models.City, error)
	Delete(ctx context.Context, id uint) error
}

// AssetTypeServicer defines the contract for asset-type lookup operations.
type AssetTypeServicer interface {
	List(ctx context.Context, params LookupParams) ([]models.AssetType, error)
	Create(ctx context.Context, name string) (*models.AssetType, error)
	Update(ctx context.Context, id uint, name string) (*models.AssetType, error)
	Delete(ctx context.Context, id uint) error
}

// UserServicer defines the contract for user administration operations.
type UserServicer interface {
	List(ctx context.Context, params UserParams) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, input UserInput) (*models.User, error)
	Update(ctx context.Context, id uint, input UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// InvestmentServicer defines the contract for user-investment operations.
type InvestmentServicer interface {
	List(ctx context.Context, params InvestmentParams) ([]models.UserInvestment, error)
	Create(ctx context.Context, input InvestmentInput) (*models.UserInvestment, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.UserInvestment, error)
	Statistics(ctx context.Context, userID uint) (*InvestmentStatistics, error)
}

// TransactionServicer defines the contract for wallet transaction operations.
type TransactionServicer interface {
	List(ctx context.Context, params TransactionParams) ([]models.Transaction, error)
	Create(ctx context.Context, input TransactionInput) (*models.Transaction, error)
	Statistics(ctx context.Context, userID uint) (*TransactionStatistics, error)
}

// AuthServicer defines the contract for authentication against the backend.
type AuthServicer interface {
	Login(ctx context.Context, phone, password string) (*models.User, error)
	Register(ctx context.Context, name, phone, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, input ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, current, updated string) error
}

// AdminServicer defines the contract for the admin dashboard statistics.
type AdminServicer interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	GrowthStats(ctx context.Context) (*GrowthStats, error)
}
