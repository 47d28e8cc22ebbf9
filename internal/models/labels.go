package models

// Bilingual label tables for wallet transactions. The UI speaks Arabic, the
// backend speaks the canonical English codes; both directions must stay
// exhaustive so that no screen falls back to a raw code and no request ships
// an untranslated label.

var transactionTypeLabels = map[TransactionType]string{
	TransactionTypeDeposit:    "إيداع",
	TransactionTypeWithdrawal: "سحب",
	TransactionTypeInvestment: "استثمار",
	TransactionTypeRefund:     "أرباح",
}

var transactionTypeCodes = map[string]TransactionType{
	"إيداع":   TransactionTypeDeposit,
	"سحب":     TransactionTypeWithdrawal,
	"استثمار": TransactionTypeInvestment,
	"أرباح":   TransactionTypeRefund,
}

var transactionStatusLabels = map[TransactionStatus]string{
	TransactionStatusCompleted: "مكتمل",
	TransactionStatusPending:   "قيد المعالجة",
	TransactionStatusFailed:    "فشل",
	TransactionStatusCancelled: "ملغي",
}

var transactionStatusCodes = map[string]TransactionStatus{
	"مكتمل":        TransactionStatusCompleted,
	"قيد المعالجة": TransactionStatusPending,
	"فشل":          TransactionStatusFailed,
	"ملغي":         TransactionStatusCancelled,
}

// Label returns the Arabic display label for the transaction type.
// Unknown codes pass through unchanged.
func (t TransactionType) Label() string {
	if label, ok := transactionTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Label returns the Arabic display label for the transaction status.
// Unknown codes pass through unchanged.
func (s TransactionStatus) Label() string {
	if label, ok := transactionStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseTransactionType maps an Arabic label (or an already-canonical code)
// to the canonical transaction type. Unknown values pass through unchanged.
func ParseTransactionType(value string) TransactionType {
	if code, ok := transactionTypeCodes[value]; ok {
		return code
	}
	return TransactionType(value)
}

// ParseTransactionStatus maps an Arabic label (or an already-canonical code)
// to the canonical transaction status. Unknown values pass through unchanged.
func ParseTransactionStatus(value string) TransactionStatus {
	if code, ok := transactionStatusCodes[value]; ok {
		return code
	}
	return TransactionStatus(value)
}

// IsCredit reports whether the transaction type adds funds to the wallet.
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeRefund
}
