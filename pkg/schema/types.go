package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the type string, as accepted by ParseType.
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type basicType struct {
	name  string
	check func(any) bool
}

func (t basicType) Name() string { return t.name }

func (t basicType) Validate(value any) error {
	if !t.check(value) {
		return fmt.Errorf("expected %s, got %T", t.name, value)
	}
	return nil
}

// String accepts string values.
func String() Type {
	return basicType{name: "string", check: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}
}

// Int accepts integers, whole floats (from JSON decoding) and integral json.Number values.
func Int() Type {
	return basicType{name: "int", check: func(v any) bool {
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return n == float64(int64(n))
		case json.Number:
			_, err := n.Int64()
			return err == nil
		}
		return false
	}}
}

// Float accepts any numeric value.
func Float() Type {
	return basicType{name: "float", check: func(v any) bool {
		switch n := v.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case json.Number:
			_, err := n.Float64()
			return err == nil
		}
		return false
	}}
}

// Bool accepts boolean values.
func Bool() Type {
	return basicType{name: "bool", check: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}
}

// Map accepts maps keyed by strings.
func Map() Type {
	return basicType{name: "map", check: func(v any) bool {
		rv := reflect.ValueOf(v)
		return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
	}}
}

// Any accepts every present value.
func Any() Type {
	return basicType{name: "any", check: func(any) bool { return true }}
}

type sliceType struct{ elem Type }

// Slice accepts slices and arrays whose elements all satisfy elem.
func Slice(elem Type) Type { return sliceType{elem: elem} }

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected %s, got %T", t.Name(), value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

type optionalType struct{ inner Type }

// Optional marks a field that may be absent or nil; present values must satisfy inner.
func Optional(inner Type) Type { return optionalType{inner: inner} }

func (t optionalType) Name() string { return "?" + t.inner.Name() }

func (t optionalType) Validate(value any) error {
	if value == nil {
		return nil
	}
	return t.inner.Validate(value)
}

type customType struct {
	name     string
	validate func(any) error
}

// Custom creates a type with a user-defined validation function.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

func (t customType) Name() string { return t.name }

func (t customType) Validate(value any) error { return t.validate(value) }

func isOptional(t Type) bool {
	_, ok := t.(optionalType)
	return ok
}

// ParseType converts a type string to a Type.
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)
	if rest, ok := strings.CutPrefix(typeStr, "?"); ok {
		inner, err := ParseType(rest)
		if err != nil {
			return nil, err
		}
		return Optional(inner), nil
	}
	if len(typeStr) > 2 && strings.HasPrefix(typeStr, "[") && strings.HasSuffix(typeStr, "]") {
		elem, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "map":
		return Map(), nil
	case "any":
		return Any(), nil
	}
	return nil, fmt.Errorf("unsupported type: %q", typeStr)
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
