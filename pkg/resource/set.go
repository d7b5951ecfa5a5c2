package resource

import "sync"

// Set is an ordered collection of resources addressed by hash key.
// Re-adding a resource with an existing hash replaces the stored value but
// keeps its original position.
type Set struct {
	mu           sync.RWMutex
	sourceLocale string
	order        []string
	byHash       map[string]Resource
	byClean      map[string]string
}

// NewSet creates an empty set for the given source locale.
func NewSet(sourceLocale string) *Set {
	return &Set{
		sourceLocale: sourceLocale,
		byHash:       make(map[string]Resource),
		byClean:      make(map[string]string),
	}
}

// SourceLocale returns the source locale the set was created for.
func (s *Set) SourceLocale() string {
	return s.sourceLocale
}

// Add inserts or replaces resources.
func (s *Set) Add(resources ...Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range resources {
		s.add(r)
	}
}

func (s *Set) add(r Resource) {
	hash := r.HashKey()
	if _, ok := s.byHash[hash]; !ok {
		s.order = append(s.order, hash)
	}
	s.byHash[hash] = r
	s.byClean[r.KeyFor(r.locale()).clean().Hash()] = hash
}

// AddSet merges every resource of other into s, in other's order.
func (s *Set) AddSet(other *Set) {
	if other == nil || other == s {
		return
	}
	s.Add(other.All()...)
}

// Get returns the resource stored under the exact hash key.
func (s *Set) Get(hash string) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byHash[hash]
	return r, ok
}

// GetClean looks a resource up by key, ignoring whitespace differences in
// the reskey.
func (s *Set) GetClean(k Key) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.byHash[k.Hash()]; ok {
		return r, true
	}
	hash, ok := s.byClean[k.clean().Hash()]
	if !ok {
		return Resource{}, false
	}
	r, ok := s.byHash[hash]
	return r, ok
}

// GetBy returns every resource accepted by match, in insertion order.
func (s *Set) GetBy(match func(Resource) bool) []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Resource
	for _, hash := range s.order {
		if r := s.byHash[hash]; match(r) {
			out = append(out, r)
		}
	}
	return out
}

// GetBySource returns the first resource with the given source text.
func (s *Set) GetBySource(source string) (Resource, bool) {
	found := s.GetBy(func(r Resource) bool { return r.Source == source })
	if len(found) == 0 {
		return Resource{}, false
	}
	return found[0], true
}

// All returns a snapshot of the set in insertion order.
func (s *Set) All() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Resource, 0, len(s.order))
	for _, hash := range s.order {
		out = append(out, s.byHash[hash])
	}
	return out
}

// Size returns the number of distinct resources.
func (s *Set) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
