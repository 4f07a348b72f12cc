package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type SayMyName struct{}

func TestSnake(t *testing.T) {
	tests := map[string]string{
		"SayMyName":              "say_my_name",
		"StandardError":          "standard_error",
		"MakeMeSoundImportant":   "make_me_sound_important",
		"HTTPRequest":            "http_request",
		"already_snake":          "already_snake",
		"demo.ConstructGreeting": "construct_greeting",
		"step-name":              "step_name",
		"V2Upgrade":              "v2_upgrade",
	}
	for in, want := range tests {
		assert.Equal(t, want, Snake(in), in)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "say_my_name", TypeName(SayMyName{}))
	assert.Equal(t, "say_my_name", TypeName(&SayMyName{}))
	assert.Equal(t, "", TypeName(nil))
	assert.Equal(t, "", TypeName(func() {}))
}
