// Package errors provides custom error types for the Thimar client.
// All façade-layer errors should use AppError so that callers only ever
// see one fixed, localized message per failure mode and never a raw
// backend payload.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "يجب تسجيل الدخول", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "رقم الهاتف أو كلمة المرور غير صحيحة", StatusCode: http.StatusUnauthorized}
	ErrMissingCredentials = &AppError{Code: "MISSING_CREDENTIALS", Message: "رقم الهاتف وكلمة المرور مطلوبان", StatusCode: http.StatusBadRequest}
)

// General errors.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "البيانات المدخلة غير صحيحة", StatusCode: http.StatusBadRequest}
	ErrNotFound        = &AppError{Code: "NOT_FOUND", Message: "العنصر غير موجود", StatusCode: http.StatusNotFound}
	ErrOperationFailed = &AppError{Code: "OPERATION_FAILED", Message: "فشلت العملية. يرجى المحاولة مرة أخرى.", StatusCode: http.StatusBadGateway}
	ErrInternalServer  = &AppError{Code: "INTERNAL_ERROR", Message: "حدث خطأ غير متوقع", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "المستخدم غير موجود", StatusCode: http.StatusNotFound}
	ErrPhoneTaken   = &AppError{Code: "PHONE_TAKEN", Message: "رقم الهاتف هذا مستخدم بالفعل", StatusCode: http.StatusUnprocessableEntity}
	ErrEmailTaken   = &AppError{Code: "EMAIL_TAKEN", Message: "هذا البريد الإلكتروني مستخدم بالفعل", StatusCode: http.StatusUnprocessableEntity}
)

// Developer errors.
var (
	ErrDeveloperNotFound = &AppError{Code: "DEVELOPER_NOT_FOUND", Message: "المطور غير موجود", StatusCode: http.StatusNotFound}
	ErrDeveloperExists   = &AppError{Code: "DEVELOPER_EXISTS", Message: "هذا المطور موجود بالفعل", StatusCode: http.StatusUnprocessableEntity}
)

// City and asset-type errors.
var (
	ErrCityNotFound      = &AppError{Code: "CITY_NOT_FOUND", Message: "المدينة غير موجودة", StatusCode: http.StatusNotFound}
	ErrCityExists        = &AppError{Code: "CITY_EXISTS", Message: "هذه المدينة موجودة بالفعل", StatusCode: http.StatusUnprocessableEntity}
	ErrAssetTypeNotFound = &AppError{Code: "ASSET_TYPE_NOT_FOUND", Message: "نوع الأصل غير موجود", StatusCode: http.StatusNotFound}
	ErrAssetTypeExists   = &AppError{Code: "ASSET_TYPE_EXISTS", Message: "هذا نوع الأصل موجود بالفعل", StatusCode: http.StatusUnprocessableEntity}
)

// Opportunity errors.
var (
	ErrOpportunityNotFound    = &AppError{Code: "OPPORTUNITY_NOT_FOUND", Message: "الفرصة غير موجودة", StatusCode: http.StatusNotFound}
	ErrOpportunityNameTaken   = &AppError{Code: "OPPORTUNITY_NAME_TAKEN", Message: "اسم الفرصة هذا مستخدم بالفعل", StatusCode: http.StatusUnprocessableEntity}
	ErrOpportunityUnavailable = &AppError{Code: "OPPORTUNITY_UNAVAILABLE", Message: "لم تعد هذه الفرصة متاحة", StatusCode: http.StatusNotFound}
	ErrInvalidReference       = &AppError{Code: "INVALID_REFERENCE", Message: "القيمة المحددة غير موجودة", StatusCode: http.StatusUnprocessableEntity}
)

// Investment errors.
var (
	ErrDuplicateInvestment = &AppError{Code: "DUPLICATE_INVESTMENT", Message: "لديك استثمار موجود في هذه الفرصة بالفعل", StatusCode: http.StatusConflict}
	ErrBelowMinimum        = &AppError{Code: "BELOW_MINIMUM", Message: "الحد الأدنى للاستثمار هو 1,000 ريال", StatusCode: http.StatusBadRequest}
	ErrTermsNotAccepted    = &AppError{Code: "TERMS_NOT_ACCEPTED", Message: "يجب الموافقة على الشروط والأحكام", StatusCode: http.StatusBadRequest}
	ErrInvestmentFailed    = &AppError{Code: "INVESTMENT_FAILED", Message: "فشل في إنشاء الاستثمار. يرجى المحاولة مرة أخرى.", StatusCode: http.StatusBadGateway}
	ErrSubmissionInFlight  = &AppError{Code: "SUBMISSION_IN_FLIGHT", Message: "جاري معالجة الطلب", StatusCode: http.StatusConflict}
)
