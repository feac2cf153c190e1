package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel by code", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Product abc not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("create order: %w", NewDomainError("NOT_FOUND", "gone"))
		assert.ErrorIs(t, err, ErrNotFound)

		de, ok := AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "gone", de.Message)
	})

	t.Run("plain errors are not domain errors", func(t *testing.T) {
		_, ok := AsDomainError(errors.New("boom"))
		assert.False(t, ok)
	})
}

func TestNewPage(t *testing.T) {
	t.Run("defaults zero limit", func(t *testing.T) {
		p, err := NewPage(0, 0)
		require.NoError(t, err)
		assert.Equal(t, Page{Skip: 0, Limit: DefaultLimit}, p)
	})

	t.Run("clamps large limit", func(t *testing.T) {
		p, err := NewPage(10, 5000)
		require.NoError(t, err)
		assert.Equal(t, 10, p.Skip)
		assert.Equal(t, MaxLimit, p.Limit)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := NewPage(-1, 10)
		assert.Error(t, err)
		_, err = NewPage(0, -5)
		assert.Error(t, err)
	})
}
