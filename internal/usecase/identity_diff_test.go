package usecase_test

import (
	"testing"

	"go-screening-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDiffIdentities(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()

	t.Run("Should report missing, orphans and duplicates together", func(t *testing.T) {
		store := []uuid.UUID{a, b, c}
		index := []uuid.UUID{a, a, d}

		diff := usecase.DiffIdentities(store, index)

		assert.ElementsMatch(t, []uuid.UUID{b, c}, diff.Missing)
		assert.ElementsMatch(t, []uuid.UUID{d}, diff.Orphans)
		assert.ElementsMatch(t, []uuid.UUID{a}, diff.Duplicates)
	})

	t.Run("Should be empty when both sides agree", func(t *testing.T) {
		diff := usecase.DiffIdentities([]uuid.UUID{a, b}, []uuid.UUID{b, a})
		assert.Empty(t, diff.Missing)
		assert.Empty(t, diff.Orphans)
		assert.Empty(t, diff.Duplicates)
	})

	t.Run("Should detect multiplicity, not just presence", func(t *testing.T) {
		// a is backed by the store, so it is neither missing nor orphaned,
		// but the raw listing repeats it.
		diff := usecase.DiffIdentities([]uuid.UUID{a}, []uuid.UUID{a, a, a})
		assert.Empty(t, diff.Missing)
		assert.Empty(t, diff.Orphans)
		assert.Equal(t, []uuid.UUID{a}, diff.Duplicates)
	})

	t.Run("Should report duplicated orphans in both sets", func(t *testing.T) {
		diff := usecase.DiffIdentities(nil, []uuid.UUID{d, d})
		assert.Equal(t, []uuid.UUID{d}, diff.Orphans)
		assert.Equal(t, []uuid.UUID{d}, diff.Duplicates)
	})

	t.Run("Should handle empty inputs", func(t *testing.T) {
		diff := usecase.DiffIdentities(nil, nil)
		assert.Empty(t, diff.Missing)
		assert.Empty(t, diff.Orphans)
		assert.Empty(t, diff.Duplicates)

		diff = usecase.DiffIdentities([]uuid.UUID{a}, nil)
		assert.Equal(t, []uuid.UUID{a}, diff.Missing)
	})

	t.Run("Should be deterministic for a given listing", func(t *testing.T) {
		store := []uuid.UUID{a, b}
		index := []uuid.UUID{c, c, d, a}
		first := usecase.DiffIdentities(store, index)
		second := usecase.DiffIdentities(store, index)
		assert.Equal(t, first, second)
	})
}
