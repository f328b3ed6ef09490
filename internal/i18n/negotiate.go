package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

const (
	// LocaleCookie persists the visitor's chosen locale for a year.
	LocaleCookie       = "locale"
	localeCookieMaxAge = 365 * 24 * 60 * 60
)

// Negotiator resolves a request's locale: an explicit supported cookie wins,
// otherwise the Accept-Language header is matched against the supported set,
// falling back to the default locale.
type Negotiator struct {
	bundle  *Bundle
	matcher language.Matcher
}

func NewNegotiator(bundle *Bundle) *Negotiator {
	supported := bundle.SupportedLocales()
	tags := make([]language.Tag, 0, len(supported))
	for _, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return &Negotiator{
		bundle:  bundle,
		matcher: language.NewMatcher(tags),
	}
}

func (n *Negotiator) Negotiate(r *http.Request) string {
	if cookie, err := r.Cookie(LocaleCookie); err == nil && n.bundle.Supported(cookie.Value) {
		return cookie.Value
	}

	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return n.bundle.DefaultLocale()
	}

	desired, _, err := language.ParseAcceptLanguage(accept)
	if err != nil {
		return n.bundle.DefaultLocale()
	}
	_, index, conf := n.matcher.Match(desired...)
	if conf == language.No || index < 0 || index >= len(n.bundle.SupportedLocales()) {
		return n.bundle.DefaultLocale()
	}
	return n.bundle.SupportedLocales()[index]
}

// PersistLocale writes the one-year locale cookie.
func PersistLocale(w http.ResponseWriter, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookie,
		Value:    locale,
		Path:     "/",
		MaxAge:   localeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
