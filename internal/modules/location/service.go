// README: Postcode resolver; static area table first, then the shared cache.
package location

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
)

// outwardPattern matches the outward half of a UK postcode: a 1-2 letter area
// followed by a digit block ("SW1A", "SN1", "OX12").
var outwardPattern = regexp.MustCompile(`^([A-Z]{1,2})(\d[A-Z\d]?)`)

// Normalize trims and uppercases a postcode for comparison and cache keys.
func Normalize(postcode string) string {
	return strings.ToUpper(strings.TrimSpace(postcode))
}

// Outward returns the outward code of a postcode ("SW1A 1AA" -> "SW1A"), or
// "" when the input is malformed.
func Outward(postcode string) string {
	m := outwardPattern.FindStringSubmatch(Normalize(postcode))
	if m == nil {
		return ""
	}
	return m[0]
}

// Area returns the postcode area ("SW1A 1AA" -> "SW"), or "" when malformed.
func Area(postcode string) string {
	m := outwardPattern.FindStringSubmatch(Normalize(postcode))
	if m == nil {
		return ""
	}
	return m[1]
}

// Service resolves postcodes to a region and approximate coordinates.
//
// Resolution order: static area table, then the in-process memo, then the
// shared cache. Memo entries live for the process lifetime; postcodes are
// immutable facts, so there is no eviction.
type Service struct {
	store *Store

	mu   sync.Mutex
	memo map[string]*PostcodeInfo
}

func NewService(store *Store) *Service {
	return &Service{store: store, memo: make(map[string]*PostcodeInfo)}
}

// Resolve maps a postcode to its geography. Malformed or empty input yields
// nil, never an error. A nil result for a well-formed postcode means the
// shared cache has no entry; callers should batch-populate it via the
// Geocoder before relying on resolution succeeding.
func (s *Service) Resolve(ctx context.Context, postcode string) *PostcodeInfo {
	norm := Normalize(postcode)
	if norm == "" {
		return nil
	}
	a := Area(norm)
	if a == "" {
		return nil
	}
	if info, ok := ukAreas[a]; ok {
		return &info
	}

	s.mu.Lock()
	cached, ok := s.memo[norm]
	s.mu.Unlock()
	if ok {
		return cached
	}

	if s.store == nil {
		return nil
	}
	info, found, err := s.store.Get(ctx, norm)
	if err != nil {
		log.Printf("postcode cache get failed postcode=%s err=%v", norm, err)
		return nil
	}
	if !found {
		return nil
	}
	s.mu.Lock()
	s.memo[norm] = info
	s.mu.Unlock()
	return info
}

// Region returns the resolved region for a postcode, or RegionUnknown.
func (s *Service) Region(ctx context.Context, postcode string) string {
	info := s.Resolve(ctx, postcode)
	if info == nil || info.Region == "" {
		return RegionUnknown
	}
	return info.Region
}
