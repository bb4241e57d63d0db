package domain

import "context"

// ErrDeliveryRuleNotFound is returned when a rule ID does not exist.
var ErrDeliveryRuleNotFound = &Error{Code: ENOTFOUND, Message: "Delivery rule not found"}

// DeliveryRule defines the flat delivery fee and deposit requirement for
// one city. Inactive rules are invisible to checkout.
type DeliveryRule struct {
	ID                string `json:"id"`
	City              string `json:"city"`
	CityAr            string `json:"city_ar"`
	Fee               int64  `json:"fee"`
	DepositRequired   bool   `json:"deposit_required"`
	DepositPercentage int32  `json:"deposit_percentage"`
	Active            bool   `json:"active"`
}

// LocalizedCity returns the city name for the given locale.
func (r DeliveryRule) LocalizedCity(loc Locale) string {
	if loc == LocaleArabic && r.CityAr != "" {
		return r.CityAr
	}
	return r.City
}

// DeliveryQuote is the resolved delivery terms for a checkout.
type DeliveryQuote struct {
	Fee               int64
	DepositRequired   bool
	DepositPercentage int32
}

// DeliveryStore provides access to the per-city delivery rule table.
// Rules are maintained by admins; the checkout core only reads them.
type DeliveryStore interface {
	// ListRules returns all rules in store order, active or not.
	ListRules(ctx context.Context) ([]DeliveryRule, error)

	CreateRule(ctx context.Context, r *DeliveryRule) error
	UpdateRule(ctx context.Context, r *DeliveryRule) error
	DeleteRule(ctx context.Context, id string) error
}
