package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func negotiatorRequest(cookie, acceptLanguage string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: LocaleCookie, Value: cookie})
	}
	if acceptLanguage != "" {
		r.Header.Set("Accept-Language", acceptLanguage)
	}
	return r
}

func TestNegotiate_SupportedCookieWins(t *testing.T) {
	n := NewNegotiator(testBundle(t))

	locale := n.Negotiate(negotiatorRequest("ar", "fr-FR,fr;q=0.9"))
	assert.Equal(t, "ar", locale)
}

func TestNegotiate_UnsupportedCookieIsIgnored(t *testing.T) {
	n := NewNegotiator(testBundle(t))

	locale := n.Negotiate(negotiatorRequest("de", "fr-FR,fr;q=0.9"))
	assert.Equal(t, "fr", locale)
}

func TestNegotiate_AcceptLanguageHeader(t *testing.T) {
	n := NewNegotiator(testBundle(t))

	assert.Equal(t, "fr", n.Negotiate(negotiatorRequest("", "fr-CA")))
	assert.Equal(t, "ar", n.Negotiate(negotiatorRequest("", "ar-MA,ar;q=0.9,en;q=0.5")))
}

func TestNegotiate_NoSignalsFallsBackToDefault(t *testing.T) {
	n := NewNegotiator(testBundle(t))

	assert.Equal(t, "en", n.Negotiate(negotiatorRequest("", "")))
}

func TestNegotiate_UnmatchableHeaderFallsBackToDefault(t *testing.T) {
	n := NewNegotiator(testBundle(t))

	assert.Equal(t, "en", n.Negotiate(negotiatorRequest("", "ja-JP")))
}

func TestPersistLocale_SetsYearLongCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	PersistLocale(recorder, "fr")

	cookies := recorder.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, LocaleCookie, cookies[0].Name)
	assert.Equal(t, "fr", cookies[0].Value)
	assert.Equal(t, 365*24*60*60, cookies[0].MaxAge)
}
