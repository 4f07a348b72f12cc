package manifest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/baton/pkg/sequence"
	"github.com/mitchellh/mapstructure"
)

const (
	paramsRoot  = "params"
	resultsRoot = "results"
)

// reference splits "params.a.b" into its root and path. ok is false for literals.
func reference(s string) (root string, path []string, ok bool) {
	for _, r := range []string{paramsRoot, resultsRoot} {
		if s == r {
			return r, nil, true
		}
		if rest, found := strings.CutPrefix(s, r+"."); found && rest != "" {
			return r, strings.Split(rest, "."), true
		}
	}
	return "", nil, false
}

// expand replaces references in v, recursing into maps and lists.
func expand(v any, params []any, results sequence.Results) any {
	switch x := v.(type) {
	case string:
		root, path, ok := reference(x)
		if !ok {
			return x
		}
		if root == resultsRoot {
			return lookup(map[string]any(results), path)
		}
		return lookupParams(params, path)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = expand(item, params, results)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = expand(item, params, results)
		}
		return out
	default:
		return v
	}
}

// lookupParams resolves a params path: a leading index selects a positional param,
// anything else is looked up in the first param.
func lookupParams(params []any, path []string) any {
	if len(path) == 0 {
		if len(params) == 1 {
			return params[0]
		}
		return params
	}
	if i, err := strconv.Atoi(path[0]); err == nil {
		if i < 0 || i >= len(params) {
			return nil
		}
		return lookup(params[i], path[1:])
	}
	if len(params) == 0 {
		return nil
	}
	return lookup(params[0], path)
}

// lookup walks path through maps, slices and structs. Missing keys yield nil.
func lookup(v any, path []string) any {
	for _, key := range path {
		if v == nil {
			return nil
		}
		v = child(v, key)
	}
	return v
}

func child(v any, key string) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		item := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !item.IsValid() {
			return nil
		}
		return item.Interface()
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil
		}
		return rv.Index(i).Interface()
	case reflect.Struct:
		var fields map[string]any
		if err := mapstructure.Decode(rv.Interface(), &fields); err != nil {
			return nil
		}
		return fields[key]
	}
	return nil
}

// references lists the result step names v refers to.
func references(v any) []string {
	var out []string
	walkRefs(v, func(root string, path []string) {
		if root == resultsRoot && len(path) > 0 {
			out = append(out, path[0])
		}
	})
	return out
}

func walkRefs(v any, fn func(root string, path []string)) {
	switch x := v.(type) {
	case string:
		if root, path, ok := reference(x); ok {
			fn(root, path)
		}
	case map[string]any:
		for _, k := range sortedKeys(x) {
			walkRefs(x[k], fn)
		}
	case []any:
		for _, item := range x {
			walkRefs(item, fn)
		}
	}
}

func describe(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case map[string]any:
		parts := make([]string, 0, len(x))
		for _, k := range sortedKeys(x) {
			parts = append(parts, fmt.Sprintf("%s: %s", k, describe(x[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = describe(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}
