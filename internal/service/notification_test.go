package service_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
)

func messageOrder() *domain.Order {
	return &domain.Order{
		ID: "ord-123",
		ShippingAddress: domain.ShippingAddress{
			Name:    "Fatima Ali",
			Phone:   "+967777123456",
			Address: "Crater district",
			City:    "Aden",
		},
		Items: []domain.OrderItem{
			{Name: "Abaya", NameAr: "عباية", UnitPrice: 1000, Quantity: 2, Link: "https://lamsa.shop/p/abaya"},
			{Name: "Scarf", NameAr: "وشاح", UnitPrice: 400, Quantity: 1},
		},
		Total: 4400,
	}
}

func TestBuildOrderMessage(t *testing.T) {
	settings := domain.DefaultSettings()

	t.Run("english", func(t *testing.T) {
		msg := service.BuildOrderMessage(messageOrder(), &settings, domain.LocaleEnglish)

		assert.Contains(t, msg, "New order ord-123")
		assert.Contains(t, msg, "Name: Fatima Ali")
		assert.Contains(t, msg, "Address: Crater district - Aden")
		// Line totals with the currency suffix and the product link.
		assert.Contains(t, msg, "Abaya x2 - 2000 YER (https://lamsa.shop/p/abaya)")
		assert.Contains(t, msg, "Scarf x1 - 400 YER")
		assert.Contains(t, msg, ", ")
		assert.Contains(t, msg, "Total: 4400 YER")
	})

	t.Run("arabic", func(t *testing.T) {
		msg := service.BuildOrderMessage(messageOrder(), &settings, domain.LocaleArabic)

		assert.Contains(t, msg, "طلب جديد ord-123")
		assert.Contains(t, msg, "عباية x2 - 2000 ريال")
		// The Arabic comma joins the item list.
		assert.Contains(t, msg, "، ")
		assert.Contains(t, msg, "الإجمالي: 4400 ريال")
	})

	t.Run("arabic falls back to english names", func(t *testing.T) {
		order := messageOrder()
		order.Items[0].NameAr = ""
		msg := service.BuildOrderMessage(order, &settings, domain.LocaleArabic)
		assert.Contains(t, msg, "Abaya x2")
	})
}

func TestWhatsAppLink(t *testing.T) {
	t.Run("normalizes the number to digits", func(t *testing.T) {
		link := service.WhatsAppLink("+967 700 000 000", "hello")
		assert.Equal(t, "https://wa.me/967700000000?text=hello", link)
	})

	t.Run("strips the international dialing prefix", func(t *testing.T) {
		link := service.WhatsAppLink("00967700000000", "hi")
		assert.Equal(t, "https://wa.me/967700000000?text=hi", link)
	})

	t.Run("message round-trips through url escaping", func(t *testing.T) {
		msg := "طلب جديد ord-123\nالإجمالي: 4400 ريال"
		link := service.WhatsAppLink("967700000000", msg)

		parsed, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, msg, parsed.Query().Get("text"))
		assert.True(t, strings.HasPrefix(link, "https://wa.me/967700000000?text="))
	})
}
