package catalog

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/singleflight"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

type Resource string

const (
	ResourceProducts    Resource = "products"
	ResourceCollections Resource = "collections"
	ResourceColors      Resource = "colors"
)

var allResources = []Resource{ResourceProducts, ResourceCollections, ResourceColors}

// Store is the session-wide catalog state container. Fetches are idempotent
// within the TTL window, guarded by a circuit breaker toward the hosted
// backend and collapsed through singleflight so concurrent requests do not
// stampede it. Backend failures never escape the store: they are converted
// to per-resource human-readable messages for the view layer.
type Store struct {
	repo       Repository
	ttl        time.Duration
	imageHosts []string

	mu          sync.RWMutex
	products    []domain.Product
	collections []domain.Collection
	colors      []domain.Color
	fetchedAt   map[Resource]time.Time
	loading     map[Resource]bool
	lastErr     map[Resource]string

	sfg     singleflight.Group
	breaker *gobreaker.CircuitBreaker[any]

	now func() time.Time
}

func NewStore(repo Repository, ttl time.Duration, imageHosts []string) *Store {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "catalog-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Store{
		repo:       repo,
		ttl:        ttl,
		imageHosts: imageHosts,
		fetchedAt:  make(map[Resource]time.Time),
		loading:    make(map[Resource]bool),
		lastErr:    make(map[Resource]string),
		breaker:    breaker,
		now:        time.Now,
	}
}

// FetchProducts loads products from the backend unless the cached copy is
// still within the TTL window. It never returns an error; failures are
// recorded as Err(ResourceProducts).
func (s *Store) FetchProducts(ctx context.Context) {
	s.fetch(ctx, ResourceProducts, func(ctx context.Context) (any, error) {
		return s.repo.ListProducts(ctx)
	}, func(v any) {
		s.products = v.([]domain.Product)
	})
}

func (s *Store) FetchCollections(ctx context.Context) {
	s.fetch(ctx, ResourceCollections, func(ctx context.Context) (any, error) {
		return s.repo.ListCollections(ctx)
	}, func(v any) {
		s.collections = v.([]domain.Collection)
	})
}

func (s *Store) FetchColors(ctx context.Context) {
	s.fetch(ctx, ResourceColors, func(ctx context.Context) (any, error) {
		return s.repo.ListColors(ctx)
	}, func(v any) {
		s.colors = v.([]domain.Color)
	})
}

// FetchAll runs all three fetches concurrently with settle-all semantics:
// one failing resource does not block the others.
func (s *Store) FetchAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, fetch := range []func(context.Context){s.FetchProducts, s.FetchCollections, s.FetchColors} {
		wg.Add(1)
		go func(fetch func(context.Context)) {
			defer wg.Done()
			fetch(ctx)
		}(fetch)
	}
	wg.Wait()
}

func (s *Store) fetch(ctx context.Context, res Resource, load func(context.Context) (any, error), assign func(any)) {
	s.mu.RLock()
	fresh := s.within(res)
	s.mu.RUnlock()
	if fresh {
		return
	}

	_, _, _ = s.sfg.Do(string(res), func() (any, error) {
		s.mu.Lock()
		if s.within(res) {
			s.mu.Unlock()
			return nil, nil
		}
		s.loading[res] = true
		s.mu.Unlock()

		v, err := s.breaker.Execute(func() (any, error) {
			return load(ctx)
		})

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading[res] = false
		if err != nil {
			s.lastErr[res] = humanizeError(err)
			log.Printf("failed to fetch %s: %v", res, err)
			return nil, nil
		}
		assign(v)
		s.lastErr[res] = ""
		s.fetchedAt[res] = s.now()
		return nil, nil
	})
}

// within reports whether the resource was fetched inside the TTL window.
// Callers hold s.mu.
func (s *Store) within(res Resource) bool {
	at, ok := s.fetchedAt[res]
	return ok && s.now().Sub(at) < s.ttl
}

// Invalidate expires cached resources by tag ("products", "collections",
// "colors") or path ("/shop", "/"). Unknown tags expire everything.
func (s *Store) Invalidate(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "/") {
	case string(ResourceProducts), "shop", "product":
		delete(s.fetchedAt, ResourceProducts)
	case string(ResourceCollections):
		delete(s.fetchedAt, ResourceCollections)
	case string(ResourceColors):
		delete(s.fetchedAt, ResourceColors)
	default:
		for _, res := range allResources {
			delete(s.fetchedAt, res)
		}
	}
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Collections() []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

func (s *Store) Colors() []domain.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Color, len(s.colors))
	copy(out, s.colors)
	return out
}

func (s *Store) Loading(res Resource) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[res]
}

// Err returns the human-readable message of the last failed fetch for the
// resource, or "" if the last fetch succeeded.
func (s *Store) Err(res Resource) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr[res]
}

// ProductsFull joins products with their collections. Products whose
// collection is gone are dropped, as are color variants whose referenced
// color no longer resolves to a hex value. The join is recomputed on every
// call rather than cached; the inputs are small and user-paced.
func (s *Store) ProductsFull() []domain.ProductFull {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]domain.Collection, len(s.collections))
	for _, c := range s.collections {
		byID[c.ID] = c
	}

	full := make([]domain.ProductFull, 0, len(s.products))
	for _, p := range s.products {
		coll, ok := byID[p.CollectionID]
		if !ok {
			continue
		}

		colors := make([]domain.ColorVariant, 0, len(p.Colors))
		for _, cv := range p.Colors {
			if cv.Hex == "" {
				continue
			}
			colors = append(colors, cv)
		}

		joined := p
		joined.Colors = colors
		joined.Images = s.allowedImages(p.Images)
		full = append(full, domain.ProductFull{Product: joined, Collection: coll})
	}
	return full
}

// allowedImages drops image URLs whose host is not on the configured
// allowlist. Callers hold s.mu.
func (s *Store) allowedImages(images []string) []string {
	if len(s.imageHosts) == 0 {
		return images
	}
	out := make([]string, 0, len(images))
	for _, img := range images {
		u, err := url.Parse(img)
		if err != nil {
			continue
		}
		for _, host := range s.imageHosts {
			if strings.EqualFold(u.Hostname(), host) {
				out = append(out, img)
				break
			}
		}
	}
	return out
}

// humanizeError maps backend failures to the messages shown in the UI.
// Recognized conditions get friendlier text; everything else is generic.
func humanizeError(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "The store is temporarily unavailable. Please try again shortly."
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return "The store is taking too long to respond. Please try again."
	case errors.Is(err, mongo.ErrNoDocuments):
		return "The requested items could not be found."
	case mongo.IsNetworkError(err):
		return "Could not reach the store. Check your connection and try again."
	default:
		return "Something went wrong while loading the store. Please try again."
	}
}
