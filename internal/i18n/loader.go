package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

// Dict is a nested translation dictionary as loaded from a locale file.
type Dict map[string]any

// Bundle loads locale dictionaries with a process-lifetime cache and a
// single hardcoded fallback locale. Dictionaries are static build
// artifacts, so the cache is never invalidated.
type Bundle struct {
	fallback  string
	supported []string

	mu    sync.RWMutex
	cache map[string]Dict
}

func NewBundle(fallback string, supported []string) (*Bundle, error) {
	b := &Bundle{
		fallback:  fallback,
		supported: supported,
		cache:     make(map[string]Dict),
	}
	// The fallback dictionary must exist; everything else degrades to it.
	if _, err := b.load(fallback); err != nil {
		return nil, fmt.Errorf("fallback locale %q: %w", fallback, err)
	}
	return b, nil
}

func (b *Bundle) DefaultLocale() string {
	return b.fallback
}

func (b *Bundle) SupportedLocales() []string {
	return append([]string(nil), b.supported...)
}

func (b *Bundle) Supported(locale string) bool {
	for _, l := range b.supported {
		if l == locale {
			return true
		}
	}
	return false
}

// Translations returns the dictionary for the locale. Any load failure
// (unknown locale, malformed file) is logged and answered with the fallback
// locale's dictionary, never an error.
func (b *Bundle) Translations(locale string) Dict {
	dict, err := b.load(locale)
	if err != nil {
		log.Printf("failed to load locale %q, falling back to %q: %v", locale, b.fallback, err)
		fallback, ferr := b.load(b.fallback)
		if ferr != nil {
			log.Printf("failed to load fallback locale %q: %v", b.fallback, ferr)
			return Dict{}
		}
		return fallback
	}
	return dict
}

func (b *Bundle) load(locale string) (Dict, error) {
	b.mu.RLock()
	dict, ok := b.cache[locale]
	b.mu.RUnlock()
	if ok {
		return dict, nil
	}

	data, err := localeFS.ReadFile("locales/" + locale + ".json")
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	dict = Dict{}
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}

	// Only successful loads are cached; a failed locale is retried on the
	// next request.
	b.mu.Lock()
	b.cache[locale] = dict
	b.mu.Unlock()
	return dict, nil
}

// Translate walks a dotted path through the dictionary. A missing segment
// or non-string leaf logs a warning and returns the path itself so the gap
// is visible in the UI instead of crashing it.
func Translate(dict Dict, path string) string {
	segments := strings.Split(path, ".")
	var current any = map[string]any(dict)

	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			log.Printf("translation path %q hit a non-object at %q", path, segment)
			return path
		}
		current, ok = node[segment]
		if !ok {
			log.Printf("missing translation for %q", path)
			return path
		}
	}

	value, ok := current.(string)
	if !ok {
		log.Printf("translation for %q is not a string", path)
		return path
	}
	return value
}
