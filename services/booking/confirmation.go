package booking

import (
	"context"

	"toolshare/models"
	"toolshare/utils"

	"go.uber.org/zap"
)

// systemActor is recorded as the actor when the reconciliation job activates a booking.
const systemActor = string(ActorSystem)

func (s *DefaultBookingService) GetPaymentDetails(ctx context.Context, id, renterID string) (*models.PaymentDetails, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, utils.NewAuthorizationError("Only the renter can pay for this booking")
	}
	if b.Status != models.StatusApproved || b.PaymentIntentID == "" {
		return nil, utils.NewConflictError("Booking is not awaiting payment")
	}
	amount := b.Pricing.Total
	if s.ChargeDeposit {
		amount += b.Deposit
	}
	return &models.PaymentDetails{
		PaymentIntentID: b.PaymentIntentID,
		ClientSecret:    b.ClientSecret,
		Amount:          ToMinorUnits(amount),
		Currency:        s.Currency,
	}, nil
}

// ConfirmPayment activates an approved booking once its payment intent has succeeded.
// Without a gateway the renter's confirmation is taken as proof of offline payment.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, id, renterID string) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, utils.NewAuthorizationError("Only the renter can confirm payment")
	}
	if b.Status.IsTerminal() {
		return nil, utils.NewConflictError("Booking is already " + string(b.Status))
	}
	if _, ok := Next(b.Status, EventActivate); !ok {
		return nil, utils.NewConflictError("Booking is not awaiting payment")
	}
	if err := s.verifyPaid(ctx, b); err != nil {
		return nil, err
	}

	activated, err := s.transition(ctx, id, renterID, EventActivate, systemRole, nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, activated.OwnerID, "Payment received", "The renter paid. The rental is now active.", activated)
	return activated, nil
}

func systemRole(*models.Booking) ActorRole { return ActorSystem }

func (s *DefaultBookingService) verifyPaid(ctx context.Context, b *models.Booking) error {
	if s.Payments == nil {
		return nil
	}
	if b.PaymentIntentID == "" {
		return utils.NewConflictError("No payment was started for this booking")
	}
	intent, err := s.Payments.GetIntent(ctx, b.PaymentIntentID)
	if err != nil {
		return utils.NewInternalError("failed to verify payment", err)
	}
	if intent.Status != PaymentSucceeded {
		return utils.NewConflictError("Payment not completed")
	}
	return nil
}

// ReconcilePayments activates approved bookings whose payment succeeded but was never confirmed by the client.
func (s *DefaultBookingService) ReconcilePayments(ctx context.Context) (int, error) {
	if s.Payments == nil {
		return 0, nil
	}
	logger := utils.GetLogger()

	pending, err := s.Bookings.ListAwaitingPayment(ctx)
	if err != nil {
		return 0, utils.NewInternalError("failed to list bookings awaiting payment", err)
	}

	activated := 0
	for i := range pending {
		b := &pending[i]
		if err := s.verifyPaid(ctx, b); err != nil {
			if !utils.IsKind(err, utils.KindConflict) {
				logger.Warn("payment reconciliation check failed", zap.String("bookingId", b.ID), zap.Error(err))
			}
			continue
		}
		updated, err := s.transition(ctx, b.ID, systemActor, EventActivate, systemRole, nil)
		if err != nil {
			logger.Warn("payment reconciliation could not activate booking", zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		s.notify(ctx, updated.OwnerID, "Payment received", "The renter paid. The rental is now active.", updated)
		s.notify(ctx, updated.RenterID, "Rental active", "Your payment was confirmed.", updated)
		activated++
	}
	return activated, nil
}
