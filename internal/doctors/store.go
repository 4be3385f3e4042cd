package doctors

import (
	"context"
	"sort"
	"sync"
)

// Store is the persisted set of doctor rows. Replace swaps the whole table
// atomically; readers see either the old or the new set, never a mix.
type Store interface {
	Replace(ctx context.Context, doctors []Doctor) (int, error)
	Find(ctx context.Context, filter Filter) ([]Doctor, error)
	Count(ctx context.Context, specialty, city string) (int, error)
	Specialties(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]Stat, error)
}

// MemoryStore keeps doctors in process. It is used when no database is
// configured and throughout the tests.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []Doctor
	nextID int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

var _ Store = (*MemoryStore)(nil)

// Replace validates the new rows, assigns fresh IDs and swaps the snapshot.
func (s *MemoryStore) Replace(ctx context.Context, doctors []Doctor) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for _, d := range doctors {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Doctor, len(doctors))
	for i, d := range doctors {
		d.ID = s.nextID
		s.nextID++
		snapshot[i] = d
	}
	s.rows = snapshot
	return len(snapshot), nil
}

// Find returns copies of the matching rows in ascending ID order.
func (s *MemoryStore) Find(ctx context.Context, filter Filter) ([]Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Doctor
	for _, d := range s.rows {
		if matches(d, filter) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Count returns the number of rows for the specialty and city; empty
// arguments match everything.
func (s *MemoryStore) Count(ctx context.Context, specialty, city string) (int, error) {
	rows, err := s.Find(ctx, Filter{Specialty: specialty, City: city})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Specialties returns the distinct specialties, sorted.
func (s *MemoryStore) Specialties(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, d := range s.rows {
		if _, ok := seen[d.Specialty]; ok {
			continue
		}
		seen[d.Specialty] = struct{}{}
		out = append(out, d.Specialty)
	}
	sort.Strings(out)
	return out, nil
}

// Stats returns row counts grouped by specialty and city.
func (s *MemoryStore) Stats(ctx context.Context) ([]Stat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct{ specialty, city string }
	counts := make(map[key]int)
	for _, d := range s.rows {
		counts[key{d.Specialty, d.City}]++
	}
	out := make([]Stat, 0, len(counts))
	for k, n := range counts {
		out = append(out, Stat{Specialty: k.specialty, City: k.city, Count: n})
	}
	sortStats(out)
	return out, nil
}

func matches(d Doctor, f Filter) bool {
	if f.Specialty != "" && d.Specialty != f.Specialty {
		return false
	}
	if f.City != "" && d.City != f.City {
		return false
	}
	if f.MaxFee != nil && d.Fee > *f.MaxFee {
		return false
	}
	return true
}

func sortStats(stats []Stat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Specialty != stats[j].Specialty {
			return stats[i].Specialty < stats[j].Specialty
		}
		return stats[i].City < stats[j].City
	})
}
