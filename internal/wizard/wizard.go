// Package wizard drives the four-step investment flow: amount entry, terms
// agreement, payment submission, confirmation. One wizard exists per
// (user, opportunity) pair so every duplicate trigger for the same purchase
// lands on the same submission guard.
package wizard

import (
	"context"
	"sync"

	apperrors "thimar/internal/errors"
	"thimar/internal/guard"
	"thimar/internal/logger"
	"thimar/internal/models"
	"thimar/internal/services"
	"thimar/internal/uuid"
)

// MinimumInvestment is the smallest accepted stake, in riyals.
const MinimumInvestment = 1000

// Step is the wizard's current screen.
type Step int

const (
	// StepAmount collects the investment amount.
	StepAmount Step = iota + 1
	// StepTerms collects the terms-and-conditions agreement.
	StepTerms
	// StepPayment submits the investment; the only step with a side effect.
	StepPayment
	// StepConfirmation is terminal and shows the booked investment.
	StepConfirmation
)

// String returns a human-readable step name for logs.
func (s Step) String() string {
	switch s {
	case StepAmount:
		return "amount"
	case StepTerms:
		return "terms"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Confirmation is the terminal result of a completed flow.
type Confirmation struct {
	InvestmentID        uint
	Amount              float64
	TransactionRecorded bool
}

// Wizard is one user's in-progress purchase of one opportunity.
type Wizard struct {
	investments  services.InvestmentServicer
	transactions services.TransactionServicer

	userID        uint
	opportunityID uint

	mu        sync.Mutex
	step      Step
	amount    float64
	agreed    bool
	clientRef string
	result    *Confirmation

	guard guard.Guard
}

// New starts a wizard at the amount step.
func New(investments services.InvestmentServicer, transactions services.TransactionServicer, userID, opportunityID uint) *Wizard {
	return &Wizard{
		investments:   investments,
		transactions:  transactions,
		userID:        userID,
		opportunityID: opportunityID,
		step:          StepAmount,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SetAmount records the desired stake. Allowed only before payment has been
// submitted; amounts below the minimum are rejected without changing state.
func (w *Wizard) SetAmount(amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= StepPayment {
		return apperrors.Wrap(apperrors.ErrInvalidInput, nil)
	}
	if amount < MinimumInvestment {
		return apperrors.Wrap(apperrors.ErrBelowMinimum, nil)
	}
	w.amount = amount
	return nil
}

// Agree records the terms decision. Revoking agreement after payment has
// been submitted has no effect on the booked investment.
func (w *Wizard) Agree(agreed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step >= StepPayment {
		return
	}
	w.agreed = agreed
}

// Amount returns the recorded stake.
func (w *Wizard) Amount() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.amount
}

// Result returns the confirmation once the flow has completed, or nil.
func (w *Wizard) Result() *Confirmation {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return nil
	}
	r := *w.result
	return &r
}

// Back steps to the previous screen. The confirmation step is terminal and
// the amount step has nowhere to go; both are no-ops.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepTerms || w.step == StepPayment {
		w.step--
	}
}

// Continue advances the flow. Guards re-run on every call: an amount edited
// below the minimum or a revoked agreement blocks progress even if an
// earlier call had passed. At the payment step Continue performs the
// submission; at confirmation it is a no-op.
func (w *Wizard) Continue(ctx context.Context) error {
	w.mu.Lock()
	step := w.step
	amount := w.amount
	agreed := w.agreed
	w.mu.Unlock()

	switch step {
	case StepAmount:
		if amount < MinimumInvestment {
			return apperrors.Wrap(apperrors.ErrBelowMinimum, nil)
		}
		w.advance(StepAmount, StepTerms)
		return nil
	case StepTerms:
		if !agreed {
			return apperrors.Wrap(apperrors.ErrTermsNotAccepted, nil)
		}
		w.advance(StepTerms, StepPayment)
		return nil
	case StepPayment:
		return w.submit(ctx, amount, agreed)
	default:
		return nil
	}
}

// advance moves from one step to the next only if no concurrent call moved
// the wizard first.
func (w *Wizard) advance(from, to Step) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == from {
		w.step = to
	}
}

// submit books the investment and records the matching wallet transaction.
// The guard admits exactly one attempt at a time and never re-admits a
// completed one; the client reference is minted once and reused across
// retries so the backend can deduplicate.
func (w *Wizard) submit(ctx context.Context, amount float64, agreed bool) error {
	if amount < MinimumInvestment {
		return apperrors.Wrap(apperrors.ErrBelowMinimum, nil)
	}
	if !agreed {
		return apperrors.Wrap(apperrors.ErrTermsNotAccepted, nil)
	}

	if !w.guard.Begin() {
		if w.guard.State() == guard.Succeeded {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrSubmissionInFlight, nil)
	}

	w.mu.Lock()
	if w.clientRef == "" {
		w.clientRef = uuid.New()
	}
	clientRef := w.clientRef
	w.mu.Unlock()

	inv, err := w.investments.Create(ctx, services.InvestmentInput{
		UserID:        w.userID,
		OpportunityID: w.opportunityID,
		Amount:        amount,
		ClientRef:     clientRef,
	})
	if err != nil {
		w.guard.Fail(err)
		return err
	}

	// The investment is booked; a failed wallet entry must not undo it.
	// The gap is logged and flagged on the confirmation for reconciliation.
	txRecorded := true
	_, txErr := w.transactions.Create(ctx, services.TransactionInput{
		UserID: w.userID,
		Type:   string(models.TransactionTypeInvestment),
		Amount: amount,
	})
	if txErr != nil {
		txRecorded = false
		logger.Get().Errorw("investment booked but wallet transaction failed",
			"user_id", w.userID,
			"opportunity_id", w.opportunityID,
			"investment_id", inv.ID,
			"error", txErr,
		)
	}

	w.guard.Succeed()

	w.mu.Lock()
	w.step = StepConfirmation
	w.result = &Confirmation{
		InvestmentID:        inv.ID,
		Amount:              amount,
		TransactionRecorded: txRecorded,
	}
	w.mu.Unlock()
	return nil
}

// Registry hands out one wizard per (user, opportunity) pair so concurrent
// requests for the same purchase share a guard.
type Registry struct {
	investments  services.InvestmentServicer
	transactions services.TransactionServicer

	mu      sync.Mutex
	wizards map[registryKey]*Wizard
}

type registryKey struct {
	userID        uint
	opportunityID uint
}

// NewRegistry creates an empty wizard registry.
func NewRegistry(investments services.InvestmentServicer, transactions services.TransactionServicer) *Registry {
	return &Registry{
		investments:  investments,
		transactions: transactions,
		wizards:      make(map[registryKey]*Wizard),
	}
}

// Get returns the wizard for the pair, creating it on first use.
func (r *Registry) Get(userID, opportunityID uint) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{userID: userID, opportunityID: opportunityID}
	if w, ok := r.wizards[key]; ok {
		return w
	}
	w := New(r.investments, r.transactions, userID, opportunityID)
	r.wizards[key] = w
	return w
}

// Drop removes a wizard so a fresh flow can start, e.g. after the user
// dismisses the confirmation screen.
func (r *Registry) Drop(userID, opportunityID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wizards, registryKey{userID: userID, opportunityID: opportunityID})
}
