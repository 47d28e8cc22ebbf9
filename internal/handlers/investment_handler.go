package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thimar/internal/models"
	"thimar/internal/pagination"
	"thimar/internal/services"
	"thimar/internal/wizard"
)

// InvestmentHandler handles the investor's portfolio, the investment wizard,
// and the wallet.
type InvestmentHandler struct {
	investmentService  services.InvestmentServicer
	transactionService services.TransactionServicer
	wizards            *wizard.Registry
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService services.InvestmentServicer, transactionService services.TransactionServicer, wizards *wizard.Registry) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService:  investmentService,
		transactionService: transactionService,
		wizards:            wizards,
	}
}

// WizardAmountRequest represents the request payload for the amount step
type WizardAmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// WizardTermsRequest represents the request payload for the terms step
type WizardTermsRequest struct {
	Agreed bool `json:"agreed"`
}

// UpdateInvestmentStatusRequest represents the request payload for changing
// an investment's backend-defined status
type UpdateInvestmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateTransactionRequest represents the request payload for recording a
// wallet transaction. Type and status accept Arabic labels or canonical codes.
type CreateTransactionRequest struct {
	Type   string  `json:"type" binding:"required,transaction_type"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Status string  `json:"status" binding:"omitempty,transaction_status"`
	Date   string  `json:"date"`
}

// TransactionView is a transaction with its Arabic display labels attached.
type TransactionView struct {
	models.Transaction
	TypeLabel   string `json:"type_label"`
	StatusLabel string `json:"status_label"`
	Credit      bool   `json:"credit"`
}

// wizardState is the wizard snapshot returned to the screen after every step.
type wizardState struct {
	Step   string               `json:"step"`
	Amount float64              `json:"amount"`
	Result *wizard.Confirmation `json:"result,omitempty"`
}

func snapshotWizard(w *wizard.Wizard) wizardState {
	return wizardState{
		Step:   w.Step().String(),
		Amount: w.Amount(),
		Result: w.Result(),
	}
}

// ListMyInvestments returns the authenticated user's investments
// @Summary     List own investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Investments"
// @Router      /investments [get]
func (h *InvestmentHandler) ListMyInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req struct {
		pagination.PageRequest
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	investments, err := h.investmentService.List(c.Request.Context(), services.InvestmentParams{
		PageRequest: req.PageRequest,
		UserID:      userID,
		Status:      req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": investments})
}

// MyStatistics returns the authenticated user's portfolio summary
// @Summary     Portfolio statistics
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Statistics"
// @Router      /investments/statistics [get]
func (h *InvestmentHandler) MyStatistics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.investmentService.Statistics(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// WalletStatistics returns the authenticated user's wallet summary
// @Summary     Wallet statistics
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Statistics"
// @Router      /wallet/statistics [get]
func (h *InvestmentHandler) WalletStatistics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.transactionService.Statistics(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// UpdateInvestmentStatus changes an investment's status
// @Summary     Update investment status
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       request body UpdateInvestmentStatusRequest true "New status"
// @Success     200 {object} map[string]any "Updated investment"
// @Router      /investments/{id}/status [put]
func (h *InvestmentHandler) UpdateInvestmentStatus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	investment, err := h.investmentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// wizardFor resolves the wizard bound to the caller and the opportunity in
// the path.
func (h *InvestmentHandler) wizardFor(c *gin.Context) (*wizard.Wizard, uint, uint, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, 0, 0, err
	}
	opportunityID, err := parsePathID(c, "id")
	if err != nil {
		return nil, 0, 0, err
	}
	return h.wizards.Get(userID, opportunityID), userID, opportunityID, nil
}

// WizardState returns the current step of the investment flow
// @Summary     Wizard state
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "State"
// @Router      /opportunities/{id}/invest [get]
func (h *InvestmentHandler) WizardState(c *gin.Context) {
	w, _, _, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": snapshotWizard(w)})
}

// WizardSetAmount records the stake for the amount step
// @Summary     Set investment amount
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Param       request body WizardAmountRequest true "Amount in riyals"
// @Success     200 {object} map[string]any "State"
// @Failure     400 {object} ErrorResponse "Below the minimum"
// @Router      /opportunities/{id}/invest/amount [post]
func (h *InvestmentHandler) WizardSetAmount(c *gin.Context) {
	w, _, _, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WizardAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := w.SetAmount(req.Amount); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": snapshotWizard(w)})
}

// WizardAgree records the terms decision
// @Summary     Agree to terms
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Param       request body WizardTermsRequest true "Agreement"
// @Success     200 {object} map[string]any "State"
// @Router      /opportunities/{id}/invest/terms [post]
func (h *InvestmentHandler) WizardAgree(c *gin.Context) {
	w, _, _, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WizardTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	w.Agree(req.Agreed)
	c.JSON(http.StatusOK, gin.H{"wizard": snapshotWizard(w)})
}

// WizardContinue advances the flow; at the payment step it books the
// investment
// @Summary     Advance the wizard
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "State"
// @Failure     409 {object} ErrorResponse "Submission in flight or duplicate"
// @Router      /opportunities/{id}/invest/continue [post]
func (h *InvestmentHandler) WizardContinue(c *gin.Context) {
	w, _, _, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := w.Continue(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wizard": snapshotWizard(w)})
}

// WizardBack steps to the previous screen
// @Summary     Step back
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "State"
// @Router      /opportunities/{id}/invest/back [post]
func (h *InvestmentHandler) WizardBack(c *gin.Context) {
	w, _, _, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	w.Back()
	c.JSON(http.StatusOK, gin.H{"wizard": snapshotWizard(w)})
}

// WizardReset discards the flow so a fresh one can start
// @Summary     Reset the wizard
// @Tags        wizard
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Opportunity ID"
// @Success     200 {object} map[string]any "Reset"
// @Router      /opportunities/{id}/invest [delete]
func (h *InvestmentHandler) WizardReset(c *gin.Context) {
	_, userID, opportunityID, err := h.wizardFor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.wizards.Drop(userID, opportunityID)
	c.JSON(http.StatusOK, gin.H{"message": "تمت إعادة التعيين"})
}

// ListMyTransactions returns the authenticated user's wallet history with
// Arabic display labels
// @Summary     Wallet history
// @Tags        wallet
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]any "Transactions"
// @Router      /wallet/transactions [get]
func (h *InvestmentHandler) ListMyTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req struct {
		pagination.PageRequest
		Type   string `form:"type" binding:"omitempty,transaction_type"`
		Status string `form:"status" binding:"omitempty,transaction_status"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transactions, err := h.transactionService.List(c.Request.Context(), services.TransactionParams{
		PageRequest: req.PageRequest,
		UserID:      userID,
		Type:        models.ParseTransactionType(req.Type),
		Status:      models.ParseTransactionStatus(req.Status),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	views := make([]TransactionView, len(transactions))
	for i, tx := range transactions {
		views[i] = TransactionView{
			Transaction: tx,
			TypeLabel:   tx.Type.Label(),
			StatusLabel: tx.Status.Label(),
			Credit:      tx.Type.IsCredit(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": views})
}

// CreateTransaction records a wallet transaction for the authenticated user
// @Summary     Record a wallet transaction
// @Tags        wallet
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]any "Created transaction"
// @Router      /wallet/transactions [post]
func (h *InvestmentHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), services.TransactionInput{
		UserID: userID,
		Type:   req.Type,
		Amount: req.Amount,
		Status: req.Status,
		Date:   req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": TransactionView{
		Transaction: *tx,
		TypeLabel:   tx.Type.Label(),
		StatusLabel: tx.Status.Label(),
		Credit:      tx.Type.IsCredit(),
	}})
}
