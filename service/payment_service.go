package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"clubhouse/events"
	"clubhouse/models"

	log "github.com/sirupsen/logrus"
)

var paymentCodePattern = regexp.MustCompile(`^[A-Z0-9]{8,12}$`)

// ValidPaymentCode reports whether text looks like an M-Pesa transaction code
func ValidPaymentCode(code string) bool {
	return paymentCodePattern.MatchString(code)
}

// paymentService implements the PaymentService interface
type paymentService struct {
	uowFactory UnitOfWorkFactory
}

// NewPaymentService creates a new payment service
func NewPaymentService(uowFactory UnitOfWorkFactory) PaymentService {
	return &paymentService{
		uowFactory: uowFactory,
	}
}

func (s *paymentService) ListPackages(ctx context.Context) ([]*models.Package, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	packages, err := uow.PackageRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return packages, nil
}

func (s *paymentService) GetPackage(ctx context.Context, key string) (*models.Package, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return getPackage(ctx, uow, key)
}

func getPackage(ctx context.Context, uow UnitOfWork, key string) (*models.Package, error) {
	pkg, err := uow.PackageRepository().GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("package %q: %w", key, ErrPackageNotFound)
	}
	return pkg, nil
}

// SetPrice changes a package price
func (s *paymentService) SetPrice(ctx context.Context, key string, price int64) (*models.Package, error) {
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	updated, err := uow.PackageRepository().UpdatePrice(ctx, key, price)
	if err != nil {
		return nil, fmt.Errorf("failed to update price: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("package %q: %w", key, ErrPackageNotFound)
	}

	pkg, err := getPackage(ctx, uow, key)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pkg, nil
}

// BookPackage remembers which package the user is about to pay for
func (s *paymentService) BookPackage(ctx context.Context, userID int64, key string) (*models.Package, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pkg, err := getPackage(ctx, uow, key)
	if err != nil {
		return nil, err
	}

	if err := uow.UserRepository().SetPendingPackage(ctx, userID, key); err != nil {
		return nil, fmt.Errorf("failed to book package: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pkg, nil
}

// SubmitPayment queues the code against the user's booked package, replacing
// any earlier submission
func (s *paymentService) SubmitPayment(ctx context.Context, userID int64, name, code string) (*models.PendingPayment, error) {
	code = strings.TrimSpace(code)
	if !ValidPaymentCode(code) {
		return nil, ErrInvalidCode
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	packageKey := models.DefaultPackageKey
	if user.PendingPackage != nil && *user.PendingPackage != "" {
		packageKey = *user.PendingPackage
	}

	pkg, err := getPackage(ctx, uow, packageKey)
	if err != nil {
		return nil, err
	}

	payment := &models.PendingPayment{
		UserID:     userID,
		Name:       name,
		Code:       code,
		PackageKey: pkg.Key,
		Price:      pkg.Price,
	}

	if err := uow.PaymentRepository().Upsert(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	uow.EventBus().Publish(events.PaymentSubmittedEvent{
		UserID:     userID,
		Name:       name,
		Code:       code,
		PackageKey: pkg.Key,
		Price:      pkg.Price,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":     userID,
		"packageKey": pkg.Key,
	}).Info("Payment submitted for review")

	return payment, nil
}

func (s *paymentService) ListPending(ctx context.Context) ([]*models.PendingPayment, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	payments, err := uow.PaymentRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}

	return payments, nil
}

func (s *paymentService) CountPending(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.PaymentRepository().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending payments: %w", err)
	}

	return count, nil
}

// ApprovePayment removes the pending entry and marks the user as paid
func (s *paymentService) ApprovePayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().DeleteByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove pending payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrPaymentNotFound)
	}

	if err := uow.UserRepository().MarkPaid(ctx, userID, payment.PackageKey); err != nil {
		return nil, fmt.Errorf("failed to mark user as paid: %w", err)
	}

	uow.EventBus().Publish(events.PaymentApprovedEvent{
		UserID:     userID,
		PackageKey: payment.PackageKey,
		ApprovedBy: adminID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"adminID": adminID,
		"package": payment.PackageKey,
	}).Info("Payment approved")

	return payment, nil
}

// RejectPayment removes the pending entry and leaves the paid flag alone
func (s *paymentService) RejectPayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().DeleteByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove pending payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrPaymentNotFound)
	}

	uow.EventBus().Publish(events.PaymentRejectedEvent{
		UserID:     userID,
		RejectedBy: adminID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"adminID": adminID,
	}).Info("Payment rejected")

	return payment, nil
}
