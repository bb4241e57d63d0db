package domain

// Locale selects the storefront language for user-visible strings.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale normalizes a locale string, defaulting to Arabic,
// the storefront's primary language.
func ParseLocale(s string) Locale {
	if s == string(LocaleEnglish) {
		return LocaleEnglish
	}
	return LocaleArabic
}
