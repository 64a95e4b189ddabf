package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	errLineNotConstructed := errors.New("line must be created via newLine")

	type line struct {
		quantity int
		guard    guard.ConstructorGuard
	}

	newLine := func(quantity int) (line, error) {
		if quantity <= 0 {
			return line{}, errors.New("quantity must be positive")
		}
		return line{quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		l, err := newLine(2)

		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("struct_literal_fails", func(t *testing.T) {
		l := line{quantity: 2}

		assert.Equal(t, errLineNotConstructed, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("guard_survives_copy", func(t *testing.T) {
		l, _ := newLine(1)
		copied := l

		require.NoError(t, copied.guard.Validate(errLineNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
