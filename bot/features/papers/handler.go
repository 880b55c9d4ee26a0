package papers

import (
	"context"
	"errors"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/flow"
	"clubhouse/models"
	"clubhouse/service"
)

func (f *Feature) Dashboard(ctx context.Context, userID int64) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load dashboard", err)
	}
	return cards.Dashboard(user), nil
}

func (f *Feature) Book(ctx context.Context) (cards.Card, error) {
	packages, err := f.paymentService.ListPackages(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list packages", err)
	}
	return cards.Packages(packages), nil
}

// BookPackage records the selection and asks for the payment code
func (f *Feature) BookPackage(ctx context.Context, userID int64, name, key string) (cards.Card, error) {
	pkg, err := f.paymentService.BookPackage(ctx, userID, key)
	if errors.Is(err, service.ErrPackageNotFound) {
		return cards.Card{}, common.UserError("Package not found.", err)
	}
	if err != nil {
		return cards.Card{}, common.InternalError("failed to book package", err)
	}

	return common.RestartFlow(ctx, f.flows, userID, flow.KindPaymentCode, paymentSeed(name, pkg))
}

func (f *Feature) CheckPayment(ctx context.Context, userID int64, name string) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load user", err)
	}
	if user.Paid {
		return cards.AlreadyPaid(), nil
	}

	key := models.DefaultPackageKey
	if user.PendingPackage != nil && *user.PendingPackage != "" {
		key = *user.PendingPackage
	}

	pkg, err := f.paymentService.GetPackage(ctx, key)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load package", err)
	}

	if name == "" {
		name = user.DisplayName()
	}

	return common.RestartFlow(ctx, f.flows, userID, flow.KindPaymentCode, paymentSeed(name, pkg))
}

func paymentSeed(name string, pkg *models.Package) map[string]string {
	return map[string]string{
		flow.FieldName:        name,
		flow.FieldPackageKey:  pkg.Key,
		flow.FieldPackageName: pkg.Name,
		flow.FieldPrice:       cards.FormatPrice(pkg.Price),
	}
}

func (f *Feature) MyPapers(ctx context.Context, userID int64) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load user", err)
	}

	var pkg *models.Package
	if user.Paid && user.Package != nil {
		pkg, err = f.paymentService.GetPackage(ctx, *user.Package)
		if err != nil && !errors.Is(err, service.ErrPackageNotFound) {
			return cards.Card{}, common.InternalError("failed to load package", err)
		}
	}

	return cards.MyPapers(user, pkg), nil
}

func (f *Feature) PastPapers() cards.Card {
	return cards.PastPapers()
}

func (f *Feature) Support() cards.Card {
	return cards.Support(f.supportContact)
}

func (f *Feature) Notifications() cards.Card {
	return cards.Notifications()
}
