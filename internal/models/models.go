// Package models holds transient, non-authoritative copies of the backend's
// entities in their wire format. The backend owns every lifecycle; these
// records live only as long as the screen that fetched them.
package models

// OpportunityStatus represents the backend-owned status of an opportunity
type OpportunityStatus string

const (
	OpportunityStatusActive    OpportunityStatus = "active"
	OpportunityStatusCompleted OpportunityStatus = "completed"
	OpportunityStatusInactive  OpportunityStatus = "inactive"
	OpportunityStatusCancelled OpportunityStatus = "cancelled"
)

// Opportunity represents an investable real-estate offering
type Opportunity struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	ExpectedReturn float64           `json:"expected_return"`
	Duration       string            `json:"duration"`
	Funded         float64           `json:"funded"`
	Status         OpportunityStatus `json:"status"`
	ImageIDs       []string          `json:"image_ids,omitempty"`
	DeveloperID    uint              `json:"developer_id"`
	CityID         uint              `json:"city_id"`
	AssetTypeID    uint              `json:"asset_type_id"`
	Developer      *Developer        `json:"developer,omitempty"`
	City           *City             `json:"city,omitempty"`
	AssetType      *AssetType        `json:"asset_type,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	UpdatedAt      string            `json:"updated_at,omitempty"`
}

// Developer represents a real-estate developer
type Developer struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// City is a reference/lookup entity
type City struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AssetType is a reference/lookup entity
type AssetType struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserType represents the role of a user
type UserType string

const (
	UserTypeInvestor  UserType = "investor"
	UserTypeDeveloper UserType = "developer"
	UserTypeAdmin     UserType = "admin"
)

// UserStatus represents the account status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusBlocked  UserStatus = "blocked"
	UserStatusArchived UserStatus = "archived"
)

// User represents a marketplace user
type User struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email,omitempty"`
	Phone    string     `json:"phone"`
	Type     UserType   `json:"type"`
	Status   UserStatus `json:"status"`
	Avatar   string     `json:"avatar,omitempty"`
	JoinDate string     `json:"join_date,omitempty"`
}

// UserInvestment represents a user's stake in an opportunity.
// Status is backend-defined free text ("in progress", "profit distributed", ...).
type UserInvestment struct {
	ID            uint         `json:"id"`
	UserID        uint         `json:"user_id"`
	OpportunityID uint         `json:"opportunity_id"`
	Amount        float64      `json:"amount"`
	Status        string       `json:"status"`
	Profit        float64      `json:"profit"`
	User          *User        `json:"user,omitempty"`
	Opportunity   *Opportunity `json:"investment_opportunity,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	UpdatedAt     string       `json:"updated_at,omitempty"`
}

// TransactionType represents the canonical wallet transaction type
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeInvestment TransactionType = "investment"
	TransactionTypeRefund     TransactionType = "refund"
)

// TransactionStatus represents the canonical wallet transaction status
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents a wallet transaction
type Transaction struct {
	ID        uint              `json:"id"`
	UserID    uint              `json:"user_id"`
	Type      TransactionType   `json:"type"`
	Amount    float64           `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Date      string            `json:"date"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}
