package domain

import "context"

// StoreSettings is the store-wide configuration document, modelled as a
// fixed struct with explicit sections rather than an open-ended key merge.
// Missing fields fall back to documented defaults field by field.
type StoreSettings struct {
	General  GeneralSettings  `json:"general"`
	Social   SocialSettings   `json:"social"`
	Payments PaymentSettings  `json:"payments"`
	Sections SectionSettings  `json:"sections"`
}

// GeneralSettings carries store identity and currency labels.
type GeneralSettings struct {
	StoreName      string `json:"store_name"`
	StoreNameAr    string `json:"store_name_ar"`
	Currency       string `json:"currency"`
	CurrencyAr     string `json:"currency_ar"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

// SocialSettings holds outbound social links shown on the storefront.
type SocialSettings struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// PaymentSettings holds the display strings for the manual settlement
// paths. These are shown to the customer after a prepaid checkout; the
// system never touches the accounts themselves.
type PaymentSettings struct {
	// KurimiAccount is the bank account display string for transfers.
	KurimiAccount string `json:"kurimi_account"`

	// WalletNumber is the mobile-wallet display string for transfers.
	WalletNumber string `json:"wallet_number"`
}

// SectionSettings toggles storefront sections.
type SectionSettings struct {
	ShowNewArrivals bool `json:"show_new_arrivals"`
	ShowOffers      bool `json:"show_offers"`
	ShowCategories  bool `json:"show_categories"`
}

// PaymentInstructions is the public slice of settings a prepaid customer
// needs to settle an order.
type PaymentInstructions struct {
	BankDisplay   string `json:"bank_display"`
	WalletDisplay string `json:"wallet_display"`
}

// DefaultSettings returns the documented defaults for every section.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		General: GeneralSettings{
			StoreName:   "Lamsa",
			StoreNameAr: "لمسة",
			Currency:    "YER",
			CurrencyAr:  "ريال",
		},
		Sections: SectionSettings{
			ShowNewArrivals: true,
			ShowOffers:      true,
			ShowCategories:  true,
		},
	}
}

// MergeDefaults fills unset fields from DefaultSettings, field by field.
// Booleans in SectionSettings default to true only when the whole stored
// document carried no sections at all; an explicit false stays false.
func (s StoreSettings) MergeDefaults(sectionsSet bool) StoreSettings {
	def := DefaultSettings()

	if s.General.StoreName == "" {
		s.General.StoreName = def.General.StoreName
	}
	if s.General.StoreNameAr == "" {
		s.General.StoreNameAr = def.General.StoreNameAr
	}
	if s.General.Currency == "" {
		s.General.Currency = def.General.Currency
	}
	if s.General.CurrencyAr == "" {
		s.General.CurrencyAr = def.General.CurrencyAr
	}
	if !sectionsSet {
		s.Sections = def.Sections
	}
	return s
}

// CurrencyLabel returns the currency suffix for the given locale.
func (s StoreSettings) CurrencyLabel(loc Locale) string {
	if loc == LocaleArabic && s.General.CurrencyAr != "" {
		return s.General.CurrencyAr
	}
	return s.General.Currency
}

// Instructions extracts the public payment instructions.
func (s StoreSettings) Instructions() PaymentInstructions {
	return PaymentInstructions{
		BankDisplay:   s.Payments.KurimiAccount,
		WalletDisplay: s.Payments.WalletNumber,
	}
}

// SettingsStore persists the store settings document.
type SettingsStore interface {
	// Get returns the stored settings merged with defaults.
	Get(ctx context.Context) (*StoreSettings, error)

	// Update replaces the stored settings document.
	Update(ctx context.Context, s *StoreSettings) error
}
