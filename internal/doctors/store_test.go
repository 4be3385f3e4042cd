package doctors

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoctors() []Doctor {
	return []Doctor{
		{Name: "Dr. Ayesha Khan", Specialty: SpecialtyPsychiatrist, City: CityIslamabad, Experience: "12 Years", Reviews: 40, Fee: 3000},
		{Name: "Dr. Ali Raza", Specialty: SpecialtyPsychiatrist, City: CityLahore, Experience: "8 Years", Reviews: 15, Fee: 2000},
		{Name: "Dr. Sana Malik", Specialty: SpecialtyDermatologist, City: CityLahore, Experience: "5 Years", Reviews: 60, Fee: 2500},
		{Name: "Dr. Usman Tariq", Specialty: SpecialtyUrologist, City: CityIslamabad, Experience: "20 Years", Reviews: 3, Fee: 4000},
	}
}

func TestMemoryStoreReplaceAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	n, err := store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := store.Find(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID, "rows must come back in ID order")
	}

	fee := 2500
	lahore, err := store.Find(ctx, Filter{City: CityLahore, MaxFee: &fee})
	require.NoError(t, err)
	require.Len(t, lahore, 2)
	for _, d := range lahore {
		assert.Equal(t, CityLahore, d.City)
		assert.LessOrEqual(t, d.Fee, fee)
	}

	none, err := store.Find(ctx, Filter{Specialty: "psychiatrist"})
	require.NoError(t, err)
	assert.Empty(t, none, "specialty match is case-sensitive")
}

func TestMemoryStoreReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)
	first, err := store.Find(ctx, Filter{})
	require.NoError(t, err)

	_, err = store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)
	second, err := store.Find(ctx, Filter{})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Greater(t, second[i].ID, first[len(first)-1].ID, "IDs must not be reused")
		a, b := first[i], second[i]
		a.ID, b.ID = 0, 0
		assert.Equal(t, a, b)
	}
}

func TestMemoryStoreRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)

	_, err = store.Replace(ctx, []Doctor{{Name: "Dr. X", City: CityLahore}})
	assert.ErrorIs(t, err, ErrMissingSpecialty)
	_, err = store.Replace(ctx, []Doctor{{Name: "Dr. X", Specialty: SpecialtyUrologist}})
	assert.ErrorIs(t, err, ErrMissingCity)
	_, err = store.Replace(ctx, []Doctor{{Name: "Dr. X", Specialty: SpecialtyUrologist, City: CityLahore, Fee: -1}})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	count, err := store.Count(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 4, count, "failed replace must leave the old rows")
}

func TestMemoryStoreFindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)

	rows, err := store.Find(ctx, Filter{})
	require.NoError(t, err)
	rows[0].Name = "mutated"

	again, err := store.Find(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ayesha Khan", again[0].Name)
}

func TestMemoryStoreListings(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Replace(ctx, sampleDoctors())
	require.NoError(t, err)

	specialties, err := store.Specialties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{SpecialtyDermatologist, SpecialtyPsychiatrist, SpecialtyUrologist}, specialties)

	count, err := store.Count(ctx, SpecialtyPsychiatrist, "")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Stat{
		{Specialty: SpecialtyDermatologist, City: CityLahore, Count: 1},
		{Specialty: SpecialtyPsychiatrist, City: CityIslamabad, Count: 1},
		{Specialty: SpecialtyPsychiatrist, City: CityLahore, Count: 1},
		{Specialty: SpecialtyUrologist, City: CityIslamabad, Count: 1},
	}, stats)
}

func TestMemoryStoreReadersSeeWholeSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	batch := func(tag string) []Doctor {
		rows := make([]Doctor, 50)
		for i := range rows {
			rows[i] = Doctor{Name: fmt.Sprintf("Dr. %s %d", tag, i), Specialty: tag, City: CityLahore}
		}
		return rows
	}
	_, err := store.Replace(ctx, batch("old"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				rows, err := store.Find(ctx, Filter{})
				if err != nil {
					errs <- err.Error()
					return
				}
				if len(rows) != 50 {
					errs <- fmt.Sprintf("saw %d rows", len(rows))
					return
				}
				for _, d := range rows {
					if d.Specialty != rows[0].Specialty {
						errs <- "saw a mixed snapshot"
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		tag := "old"
		if i%2 == 0 {
			tag = "new"
		}
		_, err := store.Replace(ctx, batch(tag))
		require.NoError(t, err)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}
