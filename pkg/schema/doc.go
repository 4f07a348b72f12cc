// Package schema validates map-shaped params against declared field types.
//
// Schemas map field names to types and are usually declared in sequence manifests
// or attached to commands whose params arrive as decoded JSON or YAML:
//
//	s := schema.Schema{
//	    "name":    schema.String(),
//	    "age":     schema.Int(),
//	    "tags":    schema.Slice(schema.String()),
//	    "country": schema.Optional(schema.String()),
//	}
//
//	res := schema.Check(s, params) // domain.ValidationResult
//
// Type strings ("string", "int", "float", "bool", "map", "any", "[string]", "?int")
// can be parsed with ParseType and ParseTypeMap, which is how manifests declare them.
//
// A failed Check carries a map of field name to reasons as its errors payload, the
// shape the validation gate reports in failed outcomes.
package schema
