package domain_test

import (
	"testing"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStoreSettings_MergeDefaults(t *testing.T) {
	stored := domain.StoreSettings{
		General: domain.GeneralSettings{
			StoreNameAr:    "متجري",
			WhatsAppNumber: "+967700000000",
		},
		Payments: domain.PaymentSettings{KurimiAccount: "3012345678"},
	}

	merged := stored.MergeDefaults(false)

	// Unset fields fall back, set fields survive.
	assert.Equal(t, "Lamsa", merged.General.StoreName)
	assert.Equal(t, "متجري", merged.General.StoreNameAr)
	assert.Equal(t, "YER", merged.General.Currency)
	assert.Equal(t, "ريال", merged.General.CurrencyAr)
	assert.Equal(t, "+967700000000", merged.General.WhatsAppNumber)
	assert.Equal(t, "3012345678", merged.Payments.KurimiAccount)

	// Sections default to visible when the document carried none.
	assert.True(t, merged.Sections.ShowNewArrivals)
	assert.True(t, merged.Sections.ShowOffers)
}

func TestStoreSettings_MergeDefaults_ExplicitSectionsKept(t *testing.T) {
	stored := domain.StoreSettings{
		Sections: domain.SectionSettings{ShowNewArrivals: false, ShowOffers: true},
	}

	merged := stored.MergeDefaults(true)

	assert.False(t, merged.Sections.ShowNewArrivals)
	assert.True(t, merged.Sections.ShowOffers)
}

func TestStoreSettings_CurrencyLabel(t *testing.T) {
	s := domain.DefaultSettings()

	assert.Equal(t, "YER", s.CurrencyLabel(domain.LocaleEnglish))
	assert.Equal(t, "ريال", s.CurrencyLabel(domain.LocaleArabic))
}

func TestStoreSettings_Instructions(t *testing.T) {
	s := domain.StoreSettings{
		Payments: domain.PaymentSettings{
			KurimiAccount: "3012345678",
			WalletNumber:  "777123456",
		},
	}

	got := s.Instructions()
	assert.Equal(t, "3012345678", got.BankDisplay)
	assert.Equal(t, "777123456", got.WalletDisplay)
}
