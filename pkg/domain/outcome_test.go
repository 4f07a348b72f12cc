package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_Flags(t *testing.T) {
	ok := domain.Success(1234)
	assert.True(t, ok.Succeeded())
	assert.False(t, ok.Failed())
	assert.Equal(t, 1234, ok.Result())
	assert.Empty(t, ok.Tag())

	// Repeated reads never change the value.
	for i := 0; i < 3; i++ {
		assert.True(t, ok.Succeeded())
	}

	bad := domain.Failed("something", "abc")
	assert.False(t, bad.Succeeded())
	assert.True(t, bad.Failed())
	assert.Equal(t, domain.Tag("something"), bad.Tag())
	assert.Equal(t, "abc", bad.Result())
}

func TestOutcome_Handle(t *testing.T) {
	t.Run("Failed With Specified Tag", func(t *testing.T) {
		out := domain.Failed(domain.TagValidation, "abc")

		got, err := out.Handle(func(m *domain.Match) {
			m.Success(func(any) any { panic("success handler must not run") })
			m.FailureTag("something", func(any) any { panic("wrong tag") })
			m.FailureTag(domain.TagValidation, func(any) any { return "ok" })
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	})

	t.Run("Generic Failure Registered First Wins", func(t *testing.T) {
		out := domain.Failed(domain.TagValidation, "abc")

		got, err := out.Handle(func(m *domain.Match) {
			m.Success(func(any) any { panic("success handler must not run") })
			m.Failure(func(any) any { return "generic" })
			m.FailureTag(domain.TagValidation, func(any) any { panic("shadowed") })
		})
		require.NoError(t, err)
		assert.Equal(t, "generic", got)
	})

	t.Run("Success Receives Result", func(t *testing.T) {
		out := domain.Success("abc")

		got, err := out.Handle(func(m *domain.Match) {
			m.FailureTag("something", func(any) any { panic("wrong category") })
			m.Success(func(r any) any { return r.(string) + "!" })
		})
		require.NoError(t, err)
		assert.Equal(t, "abc!", got)
	})

	t.Run("Invalid Sugar", func(t *testing.T) {
		out := domain.Failed(domain.TagValidation, nil)

		got, err := out.Handle(func(m *domain.Match) {
			m.Invalid(func(any) any { return "invalid" })
		})
		require.NoError(t, err)
		assert.Equal(t, "invalid", got)
	})

	t.Run("Custom Conditions", func(t *testing.T) {
		out := domain.Failed("timeout", nil)

		got, err := out.Handle(func(m *domain.Match) {
			m.FailureWhen(domain.OneOf("busy", "conflict"), func(any) any { return "retry" })
			m.FailureWhen(domain.Where(func(tag domain.Tag) bool { return tag == "timeout" }), func(any) any { return "slow" })
		})
		require.NoError(t, err)
		assert.Equal(t, "slow", got)
	})

	t.Run("No Match", func(t *testing.T) {
		out := domain.Failed("other", nil)

		_, err := out.Handle(func(m *domain.Match) {
			m.Success(func(any) any { return nil })
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoMatch))

		var noMatch *domain.NoMatchError
		require.ErrorAs(t, err, &noMatch)
		assert.Equal(t, domain.Tag("other"), noMatch.Outcome.Tag())
	})
}
