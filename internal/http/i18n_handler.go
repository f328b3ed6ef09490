package http

import (
	"net/http"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/i18n"
)

type I18nHandler struct {
	bundle *i18n.Bundle
}

func NewI18nHandler(bundle *i18n.Bundle) *I18nHandler {
	return &I18nHandler{bundle: bundle}
}

// GetTranslations serves the dictionary for the route's locale. Unsupported
// locales never reach here (the locale middleware redirects first), but the
// loader's fallback still guards against a missing dictionary file.
func (h *I18nHandler) GetTranslations(w http.ResponseWriter, r *http.Request) {
	locale := getLocale(r.Context(), h.bundle.DefaultLocale())
	respondJSON(w, http.StatusOK, h.bundle.Translations(locale))
}
