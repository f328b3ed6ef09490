package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/i18n"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	localeKey    contextKey = "locale"
)

const sessionCookie = "nelly_session"

// SessionMiddleware identifies the device owning the persisted cart and
// wishlist state. First-time visitors get a fresh uuid in a one-year
// cookie; everything downstream keys storage off it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}

// LocaleMiddleware validates the {locale} path segment. A segment that is
// shaped like a locale tag but unsupported is replaced with the negotiated
// locale; anything else is a plain un-prefixed path and keeps its full path
// after the negotiated prefix. Valid locales are persisted in the locale
// cookie and stored on the context.
func LocaleMiddleware(bundle *i18n.Bundle, negotiator *i18n.Negotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := chi.URLParam(r, "locale")
			if !bundle.Supported(locale) {
				rest := r.URL.Path
				if looksLikeLocale(locale) {
					rest = strings.TrimPrefix(rest, "/"+locale)
				}
				redirectToLocale(w, r, negotiator.Negotiate(r), rest)
				return
			}

			i18n.PersistLocale(w, locale)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getLocale(ctx context.Context, fallback string) string {
	if locale, ok := ctx.Value(localeKey).(string); ok && locale != "" {
		return locale
	}
	return fallback
}

func redirectToLocale(w http.ResponseWriter, r *http.Request, locale, path string) {
	i18n.PersistLocale(w, locale)
	http.Redirect(w, r, "/"+locale+path, http.StatusTemporaryRedirect)
}

// looksLikeLocale reports whether a path segment has the shape of a locale
// tag ("en", "pt-BR"). Segments like "shop" are ordinary paths.
func looksLikeLocale(segment string) bool {
	if len(segment) == 2 {
		return true
	}
	return len(segment) == 5 && segment[2] == '-'
}
