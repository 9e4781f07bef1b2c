package payment

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v81"
)

// ErrSessionNotPaid is returned when a checkout session has not completed payment.
var ErrSessionNotPaid = errors.New("checkout session not paid")

// Service coordinates Stripe checkout creation and verification for the
// premium unlock. A pending payment record is written when checkout starts
// and resolved when the session is verified or the webhook fires.
type Service struct {
	client     Client
	repo       PaymentRepository
	priceID    string
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

// NewService creates a payment service. A nil logger falls back to the default.
func NewService(client Client, repo PaymentRepository, priceID, successURL, cancelURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:     client,
		repo:       repo,
		priceID:    priceID,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// StartCheckout creates a checkout session for the premium unlock and records
// a pending payment.
func (s *Service) StartCheckout() (*stripe.CheckoutSession, error) {
	sess, err := s.client.CreateCheckoutSession(&CheckoutSessionParams{
		PriceID:    s.priceID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	record := &PaymentRecord{
		SessionID: sess.ID,
		Status:    StatusPending,
		Amount:    sess.AmountTotal,
		Currency:  string(sess.Currency),
	}
	if err := s.repo.Insert(record); err != nil {
		return nil, fmt.Errorf("failed to record pending payment: %w", err)
	}

	s.logger.Info("checkout session created", "session_id", sess.ID)
	return sess, nil
}

// VerifySession retrieves a checkout session from Stripe and confirms payment
// completed. On success the local record is marked succeeded and the Stripe
// customer reference is returned for premium token minting.
func (s *Service) VerifySession(sessionID string) (string, error) {
	sess, err := s.client.GetCheckoutSession(sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid &&
		sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusNoPaymentRequired {
		return "", ErrSessionNotPaid
	}

	customer := customerRef(sess)
	if err := s.markPaid(sess, customer); err != nil {
		return "", err
	}

	s.logger.Info("checkout session verified", "session_id", sess.ID)
	return customer, nil
}

// MarkSessionCompleted resolves the payment record for a session reported
// paid by the checkout.session.completed webhook.
func (s *Service) MarkSessionCompleted(sess *stripe.CheckoutSession) error {
	return s.markPaid(sess, customerRef(sess))
}

func (s *Service) markPaid(sess *stripe.CheckoutSession, customer string) error {
	record, err := s.repo.GetBySessionID(sess.ID)
	if errors.Is(err, ErrPaymentRecordNotFound) {
		// Checkout may have started on another instance with a volatile store.
		record = &PaymentRecord{
			SessionID: sess.ID,
			Amount:    sess.AmountTotal,
			Currency:  string(sess.Currency),
		}
		record.Status = StatusSucceeded
		record.Customer = customer
		return s.repo.Insert(record)
	}
	if err != nil {
		return fmt.Errorf("failed to load payment record: %w", err)
	}

	record.Status = StatusSucceeded
	record.Customer = customer
	record.Amount = sess.AmountTotal
	record.Currency = string(sess.Currency)
	return s.repo.Update(record)
}

// customerRef picks the stable identity for a paid session: the Stripe
// customer if one was created, the checkout email otherwise, falling back to
// the session ID for fully anonymous checkouts.
func customerRef(sess *stripe.CheckoutSession) string {
	if sess.Customer != nil && sess.Customer.ID != "" {
		return sess.Customer.ID
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.ID
}
