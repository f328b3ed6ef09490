package filter

import (
	"sort"
	"strings"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

// Params are the applied filter inputs. Empty color/size sets mean "no
// constraint", not "match nothing"; a nil InStock shows both in-stock and
// out-of-stock products.
type Params struct {
	Search       string
	CollectionID string
	Colors       []string
	Sizes        []string
	InStock      *bool
}

func (p Params) clone() Params {
	out := p
	out.Colors = append([]string(nil), p.Colors...)
	out.Sizes = append([]string(nil), p.Sizes...)
	if p.InStock != nil {
		v := *p.InStock
		out.InStock = &v
	}
	return out
}

// Apply is a pure function of its inputs: it returns the products that
// satisfy every active constraint, sorted by search relevance when a query
// is active and by creation timestamp descending otherwise.
func Apply(products []domain.ProductFull, p Params) []domain.ProductFull {
	search := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]domain.ProductFull, 0, len(products))
	for _, prod := range products {
		if !matches(prod, p, search) {
			continue
		}
		out = append(out, prod)
	}

	if search != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return searchRank(out[i].Name, search) < searchRank(out[j].Name, search)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func matches(prod domain.ProductFull, p Params, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(prod.Name), search) {
		return false
	}

	// Collection ids are compared as trimmed strings to tolerate
	// numeric-vs-string mismatches between backend records.
	if p.CollectionID != "" && coerceID(prod.Collection.ID) != coerceID(p.CollectionID) {
		return false
	}

	if len(p.Colors) > 0 && !anyColorMatch(prod.Colors, p.Colors) {
		return false
	}

	if len(p.Sizes) > 0 && !anySizeMatch(prod.Sizes, p.Sizes) {
		return false
	}

	if p.InStock != nil && prod.InStock != *p.InStock {
		return false
	}

	return true
}

func anyColorMatch(variants []domain.ColorVariant, selected []string) bool {
	for _, v := range variants {
		hex := strings.ToLower(v.Hex)
		for _, s := range selected {
			if hex == strings.ToLower(s) {
				return true
			}
		}
	}
	return false
}

func anySizeMatch(sizes, selected []string) bool {
	for _, size := range sizes {
		for _, s := range selected {
			if strings.EqualFold(size, s) {
				return true
			}
		}
	}
	return false
}

// searchRank orders exact name matches before prefix matches before plain
// substring matches. Everything reaching here already contains the query.
func searchRank(name, search string) int {
	lower := strings.ToLower(name)
	switch {
	case lower == search:
		return 0
	case strings.HasPrefix(lower, search):
		return 1
	default:
		return 2
	}
}

func coerceID(id string) string {
	return strings.TrimSpace(id)
}
