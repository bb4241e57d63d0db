package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lamsashop/lamsa/internal/domain"
)

// The WhatsApp handoff: a pre-filled plain-text message the customer sends
// to the merchant. There is no structured contract and no delivery
// guarantee; the customer may edit or never send it.

// BuildOrderMessage renders the order summary message in the given locale.
// Items are listed as "name xQty - price currency (link)", joined by ", "
// in English and "، " in Arabic; every amount carries the localized
// currency label.
func BuildOrderMessage(order *domain.Order, settings *domain.StoreSettings, loc domain.Locale) string {
	currency := settings.CurrencyLabel(loc)
	joiner := ", "
	if loc == domain.LocaleArabic {
		joiner = "، "
	}

	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Name
		if loc == domain.LocaleArabic && item.NameAr != "" {
			name = item.NameAr
		}
		part := fmt.Sprintf("%s x%d - %d %s", name, item.Quantity, item.LineTotal(), currency)
		if item.Link != "" {
			part += fmt.Sprintf(" (%s)", item.Link)
		}
		parts = append(parts, part)
	}
	itemList := strings.Join(parts, joiner)

	var b strings.Builder
	if loc == domain.LocaleArabic {
		fmt.Fprintf(&b, "طلب جديد %s\n", order.ID)
		fmt.Fprintf(&b, "الاسم: %s\n", order.ShippingAddress.Name)
		fmt.Fprintf(&b, "الهاتف: %s\n", order.ShippingAddress.Phone)
		fmt.Fprintf(&b, "العنوان: %s - %s\n", order.ShippingAddress.Address, order.ShippingAddress.City)
		fmt.Fprintf(&b, "المنتجات: %s\n", itemList)
		fmt.Fprintf(&b, "الإجمالي: %d %s", order.Total, currency)
	} else {
		fmt.Fprintf(&b, "New order %s\n", order.ID)
		fmt.Fprintf(&b, "Name: %s\n", order.ShippingAddress.Name)
		fmt.Fprintf(&b, "Phone: %s\n", order.ShippingAddress.Phone)
		fmt.Fprintf(&b, "Address: %s - %s\n", order.ShippingAddress.Address, order.ShippingAddress.City)
		fmt.Fprintf(&b, "Items: %s\n", itemList)
		fmt.Fprintf(&b, "Total: %d %s", order.Total, currency)
	}
	return b.String()
}

// WhatsAppLink wraps a message into a wa.me URL for the merchant number.
// The number keeps digits only; "+967 700 000 000" and "00967700000000"
// both normalize to the same link.
func WhatsAppLink(number, message string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", strings.TrimPrefix(digits.String(), "00"), url.QueryEscape(message))
}
