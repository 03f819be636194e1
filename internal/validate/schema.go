// Package validate is a small schema evaluator for request bodies. A schema
// node is either a leaf validator, a fixed-field object, or a homogeneous
// list; evaluation recurses and fails closed: one missing required field,
// type mismatch, or rejected leaf invalidates the whole structure.
package validate

import "regexp"

// Kind tags the schema variant.
type Kind int

const (
	KindLeaf Kind = iota
	KindObject
	KindList
)

// Leaf maps a raw value to its accepted form, or rejects it.
type Leaf func(value any) (any, bool)

// Schema is one node of the tagged-variant schema tree.
type Schema struct {
	Kind     Kind
	Validate Leaf      // KindLeaf
	Fields   []Field   // KindObject
	Elements *Schema   // KindList
}

// Field is a named child of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Optional bool
}

// Object builds an object schema from its fields.
func Object(fields ...Field) *Schema {
	return &Schema{Kind: KindObject, Fields: fields}
}

// List builds a homogeneous-sequence schema.
func List(elements *Schema) *Schema {
	return &Schema{Kind: KindList, Elements: elements}
}

// String builds a leaf schema from a string validator.
func String(fn func(string) bool) *Schema {
	return &Schema{Kind: KindLeaf, Validate: func(value any) (any, bool) {
		s, ok := value.(string)
		if !ok || !fn(s) {
			return nil, false
		}
		return s, true
	}}
}

// Required marks a mandatory object field.
func Required(name string, schema *Schema) Field {
	return Field{Name: name, Schema: schema}
}

// Optional marks a field that may be absent but must validate when present.
func Optional(name string, schema *Schema) Field {
	return Field{Name: name, Schema: schema, Optional: true}
}

// Apply evaluates value against the schema. The second return is false when
// anything in the structure fails; partial results are never returned.
func Apply(value any, schema *Schema) (any, bool) {
	if schema == nil {
		return nil, false
	}
	switch schema.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(schema.Fields))
		for _, field := range schema.Fields {
			raw, present := obj[field.Name]
			if !present {
				if field.Optional {
					continue
				}
				return nil, false
			}
			accepted, ok := Apply(raw, field.Schema)
			if !ok {
				return nil, false
			}
			out[field.Name] = accepted
		}
		return out, true
	case KindList:
		list, ok := value.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, 0, len(list))
		for _, item := range list {
			accepted, ok := Apply(item, schema.Elements)
			if !ok {
				return nil, false
			}
			out = append(out, accepted)
		}
		return out, true
	case KindLeaf:
		if schema.Validate == nil {
			return nil, false
		}
		return schema.Validate(value)
	default:
		return nil, false
	}
}

// Identifier formats. Game ids are three lowercase words joined by hyphens,
// passwords are fixed-length alphanumeric tokens, and moves/usernames are
// restricted to printable ASCII.
var (
	gameIDPattern   = regexp.MustCompile(`^[a-z]+-[a-z]+-[a-z]+$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)
	asciiPattern    = regexp.MustCompile(`^[\x20-\x7e]+$`)
)

// GameID reports whether s is a well-formed three-word game id.
func GameID(s string) bool { return gameIDPattern.MatchString(s) }

// Password reports whether s is a well-formed 32-character seat password.
func Password(s string) bool { return passwordPattern.MatchString(s) }

// MoveText reports whether s is printable ASCII move input.
func MoveText(s string) bool { return asciiPattern.MatchString(s) }

// Username reports whether s is a printable ASCII display name.
func Username(s string) bool { return asciiPattern.MatchString(s) }
