// Package manifest declares sequences in YAML (or JSON) files and compiles them against
// a registry of commands.
//
// A manifest lists steps by registered name. Step arguments are built from references
// into the sequence params ("params.name", "params.0") and into the results of earlier
// steps ("results.greeting"); any other value is passed as a literal:
//
//	name: greet_citizen
//	result: take_last
//	params:
//	  name: string
//	  country: string
//	steps:
//	  - command: say_my_name
//	    as: greeting
//	  - command: make_me_sound_important
//	    receives:
//	      boring_message: results.greeting
//	      country: params.country
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Manifest is the declarative form of a sequence.
type Manifest struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Result      string        `yaml:"result,omitempty" json:"result,omitempty"`
	Params      schema.Schema `yaml:"params,omitempty" json:"params,omitempty"`
	Steps       []Step        `yaml:"steps" json:"steps"`
}

// Step declares one sequence step.
type Step struct {
	Command      string `yaml:"command" json:"command"`
	As           string `yaml:"as,omitempty" json:"as,omitempty"`
	InvokeWith   string `yaml:"invoke_with,omitempty" json:"invoke_with,omitempty"`
	Retry        *Retry `yaml:"retry,omitempty" json:"retry,omitempty"`
	Receives     any    `yaml:"receives,omitempty" json:"receives,omitempty"`
	ReceivesMany []any  `yaml:"receives_many,omitempty" json:"receives_many,omitempty"`
}

// Key returns the name the step result is recorded under.
func (s Step) Key() string {
	if s.As != "" {
		return s.As
	}
	return naming.Snake(s.Command)
}

// Sources lists what the step reads, in order of first use: "params" for the sequence
// params and the keys of earlier results. A step without arguments reads the params.
func (s Step) Sources() []string {
	if s.Receives == nil && s.ReceivesMany == nil {
		return []string{paramsRoot}
	}
	var out []string
	walkRefs([]any{s.Receives, s.ReceivesMany}, func(root string, path []string) {
		src := root
		if root == resultsRoot {
			if len(path) == 0 {
				return
			}
			src = path[0]
		}
		if !slices.Contains(out, src) {
			out = append(out, src)
		}
	})
	return out
}

// Retry declares a step retry policy. Delay uses time.ParseDuration syntax.
type Retry struct {
	Attempts uint     `yaml:"attempts" json:"attempts"`
	Delay    string   `yaml:"delay,omitempty" json:"delay,omitempty"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

func (r *Retry) delay() (time.Duration, error) {
	if r.Delay == "" {
		return 0, nil
	}
	return time.ParseDuration(r.Delay)
}

// Load reads a manifest file. Files ending in .json are decoded as JSON, anything else
// as YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return &m, nil
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
