package handler

import (
	"net/http"
	"strings"

	"github.com/lamsashop/lamsa/internal/domain"
)

// RequestLocale resolves the storefront language for a request. The lang
// query parameter wins, then the first Accept-Language tag. Arabic is the
// default: it is the language most of the store's customers shop in.
func RequestLocale(r *http.Request) domain.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return domain.ParseLocale(lang)
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return domain.LocaleArabic
	}
	first := header
	if i := strings.IndexAny(header, ",;"); i >= 0 {
		first = header[:i]
	}
	first = strings.TrimSpace(first)
	if i := strings.Index(first, "-"); i >= 0 {
		first = first[:i]
	}
	return domain.ParseLocale(first)
}
