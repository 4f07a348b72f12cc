package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFailure_Errors(t *testing.T) {
	t.Run("String Payload Is Wrapped", func(t *testing.T) {
		f := domain.Invalid("error_message")
		assert.Equal(t, "error_message", f.Error())
		assert.Equal(t, map[string]any{"errors": "error_message"}, f.Errors())
	})

	t.Run("Structured Payload Passes Through", func(t *testing.T) {
		payload := map[string][]string{"age": {"can't be blank"}}
		f := domain.Fail("rejected", payload)
		assert.Equal(t, payload, f.Errors())
		assert.Equal(t, domain.Failed("rejected", payload), f.Outcome())
	})

	t.Run("Errors Is", func(t *testing.T) {
		var err error = fmt.Errorf("wrapped: %w", domain.Invalid("x"))
		assert.True(t, errors.Is(err, domain.ErrInvalid))
		assert.True(t, errors.Is(err, domain.ErrFailure))

		err = domain.Fail("other", "x")
		assert.False(t, errors.Is(err, domain.ErrInvalid))
		assert.True(t, errors.Is(err, domain.ErrFailure))
	})
}

type modelErrors struct{ messages map[string][]string }

func (m modelErrors) Messages() any { return m.messages }

type model struct{ errs modelErrors }

func (m model) Errors() any { return m.errs }

func TestNormalize(t *testing.T) {
	messages := map[string][]string{"age": {"can't be blank"}}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "plain string", in: "boom", want: "boom"},
		{name: "error collapses to text", in: errors.New("Who am I?"), want: "Who am I?"},
		{name: "errors then messages", in: model{errs: modelErrors{messages: messages}}, want: messages},
		{name: "slice untouched", in: []int{1, 2, 3}, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Normalize(tt.in))
		})
	}
}

func TestValidationResult_DefaultErrors(t *testing.T) {
	v := domain.NewValidationResult(true, nil)
	assert.True(t, v.IsValid())
	assert.Equal(t, []any{}, v.Errors())
	assert.Equal(t, v, domain.Valid())
}
