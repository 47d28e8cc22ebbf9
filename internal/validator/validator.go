// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// saudiPhoneRegex matches the backend's accepted phone formats: a local
// 05xxxxxxxx number or the +9665xxxxxxxx international form.
var saudiPhoneRegex = regexp.MustCompile(`^(05[0-9]{8}|\+9665[0-9]{8})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("saudi_phone", validateSaudiPhone)
		_ = v.RegisterValidation("user_type", validateUserType)
		_ = v.RegisterValidation("user_status", validateUserStatus)
		_ = v.RegisterValidation("opportunity_status", validateOpportunityStatus)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
	}
}

func validateSaudiPhone(fl validator.FieldLevel) bool {
	return saudiPhoneRegex.MatchString(fl.Field().String())
}

func validateUserType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "investor", "developer", "admin":
		return true
	}
	return false
}

func validateUserStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "blocked", "archived":
		return true
	}
	return false
}

func validateOpportunityStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "completed", "inactive", "cancelled":
		return true
	}
	return false
}

// validateTransactionType accepts the canonical code or its Arabic display
// label; handlers canonicalize before forwarding.
func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "deposit", "withdrawal", "investment", "refund",
		"إيداع", "سحب", "استثمار", "أرباح":
		return true
	}
	return false
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "completed", "pending", "failed", "cancelled",
		"مكتمل", "قيد المعالجة", "فشل", "ملغي":
		return true
	}
	return false
}
