package cards

import (
	"fmt"
	"strings"

	"clubhouse/models"
)

// Papers and admin tokens mirror their slash commands
const (
	TokenDashboard       = "/dashboard"
	TokenBook            = "/book"
	TokenMyPapers        = "/mypapers"
	TokenPastPapers      = "/pastpapers"
	TokenCheckPayment    = "/checkpayment"
	TokenSupport         = "/support"
	TokenMyNotifications = "/mynotifications"

	TokenAdminPanel   = "/adminpanel"
	TokenViewPayments = "/viewpayments"
	TokenEditPackages = "/editpackages"
	TokenBroadcast    = "/broadcast"
	TokenAddAdmin     = "/addadmin"
	TokenRemoveAdmin  = "/removeadmin"

	PrefixBook = "/book_"
)

var packageLabels = map[string]string{
	"single":       "📘 Single Paper",
	"package_5":    "📚 5 Papers",
	"subscription": "🗂️ All Papers",
	"school":       "🏫 School Package",
	"early_bird":   "🐦 Early Bird",
}

func packageLabel(p *models.Package) string {
	if label, ok := packageLabels[p.Key]; ok {
		return label
	}
	return "📦 " + p.Name
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return Escape(*s)
}

func Dashboard(u *models.User) Card {
	status := "❌ Not Paid"
	if u.Paid {
		status = "✅ Paid"
	}

	name := u.FullName
	if name == "" {
		name = u.DisplayName()
	}

	text := "📊 *Your Dashboard*\n" +
		fmt.Sprintf("👤 Name: %s\n", Escape(name)) +
		"🏫 Class: Form 4\n" +
		fmt.Sprintf("📦 Package: %s\n", orNone(u.Package)) +
		fmt.Sprintf("📚 Booked: %s\n", orNone(u.PendingPackage)) +
		fmt.Sprintf("💳 Status: %s", status)

	return Card{
		Text: text,
		Rows: column(
			Button{Label: "📘 Book Papers", Token: TokenBook},
			Button{Label: "📄 My Papers", Token: TokenMyPapers},
			Button{Label: "📚 Past Papers", Token: TokenPastPapers},
			Button{Label: "💰 Check Payment", Token: TokenCheckPayment},
			Button{Label: "🛠️ Support", Token: TokenSupport},
			Button{Label: "🔔 Notifications", Token: TokenMyNotifications},
		),
	}
}

func Packages(packages []*models.Package) Card {
	content := make([][]Button, 0, len(packages))
	for _, p := range packages {
		content = append(content, []Button{{
			Label: fmt.Sprintf("%s - %s", packageLabel(p), FormatPrice(p.Price)),
			Token: PrefixBook + p.Key,
		}})
	}

	return Card{
		Text: "📦 *Choose Your Package*\n\n🎯 Special discounts available for schools and early birds!",
		Rows: Grid(content, column(Button{Label: "🔙 Back", Token: TokenDashboard})),
	}
}

func AlreadyPaid() Card {
	return Message("✅ You have already been verified as *PAID*. You can access your booked papers in /mypapers")
}

func PaymentReceived(p *models.PendingPayment) Card {
	return Card{
		Text: fmt.Sprintf("✅ Payment code received: `%s`\n\n", p.Code) +
			"✅ Thank you! Your payment has been received and is pending confirmation by the admin.\n\n" +
			"You will be notified once verified.",
		Rows: column(Button{Label: "📊 Dashboard", Token: TokenDashboard}),
	}
}

// PaymentPending is the review request sent to every admin
func PaymentPending(p *models.PendingPayment) Card {
	return Message("💰 *Payment Pending Review*\n" +
		fmt.Sprintf("👤 %s\n", Escape(p.Name)) +
		fmt.Sprintf("🆔 %d\n", p.UserID) +
		fmt.Sprintf("📦 %s\n", Escape(p.PackageKey)) +
		fmt.Sprintf("💳 Code: %s\n", p.Code) +
		fmt.Sprintf("💵 Amount: %s\n\n", FormatPrice(p.Price)) +
		fmt.Sprintf("Use /approve %d or /reject %d", p.UserID, p.UserID))
}

func PaymentApproved() Card {
	return Card{
		Text: "🎉 *Payment Approved!*\n\nYou now have full access to your booked papers.\nUse /mypapers to continue.",
		Rows: column(Button{Label: "📄 My Papers", Token: TokenMyPapers}),
	}
}

func PaymentRejected() Card {
	return Card{
		Text: "❌ Your payment could not be verified. Please recheck your transaction code and try again.",
		Rows: column(Button{Label: "💰 Check Payment", Token: TokenCheckPayment}),
	}
}

func MyPapers(u *models.User, pkg *models.Package) Card {
	if !u.Paid {
		return Message("📄 Your papers will be available here after payment verification.")
	}

	name := "your package"
	if pkg != nil {
		name = pkg.Name
	}
	return Card{
		Text: fmt.Sprintf("📄 *My Papers*\n\n📦 Package: *%s*\n\nYour papers are released daily according to the official KCSE timetable.", Escape(name)),
		Rows: column(Button{Label: "🔙 Back", Token: TokenDashboard}),
	}
}

func PastPapers() Card {
	return Message("📚 Past papers feature coming soon!")
}

func Support(contact string) Card {
	return Message("🛠️ Contact support at: " + contact)
}

func Notifications() Card {
	return Message("🔔 Notification settings coming soon!")
}

// ==================== ADMIN ====================

func AdminPanel(totalUsers, pendingPayments int) Card {
	return Card{
		Text: "👑 *Admin Dashboard*\n\n" +
			fmt.Sprintf("👥 Total Users: %d\n", totalUsers) +
			fmt.Sprintf("💳 Pending Payments: %d\n\n", pendingPayments) +
			"Select an action below:",
		Rows: column(
			Button{Label: "💰 View Payments", Token: TokenViewPayments},
			Button{Label: "📦 Edit Packages", Token: TokenEditPackages},
			Button{Label: "📢 Broadcast Message", Token: TokenBroadcast},
			Button{Label: "➕ Add Admin", Token: TokenAddAdmin},
			Button{Label: "➖ Remove Admin", Token: TokenRemoveAdmin},
		),
	}
}

func PendingPayments(payments []*models.PendingPayment) Card {
	if len(payments) == 0 {
		return Message("✅ No pending payments at the moment.")
	}

	var b strings.Builder
	b.WriteString("💳 *Pending Payments*\n\n")
	for i, p := range payments {
		fmt.Fprintf(&b, "%d. 👤 %s\n", i+1, Escape(p.Name))
		fmt.Fprintf(&b, "🆔 %d\n", p.UserID)
		fmt.Fprintf(&b, "📦 %s\n", Escape(p.PackageKey))
		fmt.Fprintf(&b, "💵 %s\n", FormatPrice(p.Price))
		fmt.Fprintf(&b, "💳 %s\n\n", p.Code)
	}
	b.WriteString("Use /approve <user\\_id> or /reject <user\\_id> to process.")

	return Message(b.String())
}

func PackagePrices(packages []*models.Package) Card {
	var b strings.Builder
	b.WriteString("📦 *Current Packages*\n\n")
	for _, p := range packages {
		fmt.Fprintf(&b, "• %s (`%s`) - %s\n", p.Name, p.Key, FormatPrice(p.Price))
	}
	b.WriteString("\n\nTo update a price, use:\n`/setprice <package_key> <new_price>`")

	return Message(b.String())
}

func PriceUpdated(p *models.Package) Card {
	return Message(fmt.Sprintf("✅ Updated *%s* package price to *%s*", Escape(p.Key), FormatPrice(p.Price)))
}

func BroadcastDone(delivered, total int) Card {
	return Message(fmt.Sprintf("✅ Broadcast delivered to %d/%d users.", delivered, total))
}
