package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Type defines the contract for attribute values.
// Implementations determine how values are validated and normalized.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "number", "color").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// Coerce returns the normalized form of an accepted value.
	Coerce(value any) (any, error)
}

// --- Built-in Type Implementations ---

// NumberOptions bounds a NumberType or IntegerType.
type NumberOptions struct {
	Min          *float64
	Max          *float64
	ExclusiveMin bool
}

// Bounds is a convenience constructor for inclusive NumberOptions.
func Bounds(min, max float64) NumberOptions {
	return NumberOptions{Min: &min, Max: &max}
}

// Positive accepts numbers strictly greater than zero.
func Positive() NumberOptions {
	zero := 0.0
	return NumberOptions{Min: &zero, ExclusiveMin: true}
}

// Min is a convenience constructor for a lower bound only.
func Min(min float64) NumberOptions {
	return NumberOptions{Min: &min}
}

func (o NumberOptions) check(v float64) error {
	if o.Min != nil {
		if o.ExclusiveMin && v <= *o.Min {
			return fmt.Errorf("must be greater than %v", *o.Min)
		}
		if v < *o.Min {
			return fmt.Errorf("must be >= %v", *o.Min)
		}
	}
	if o.Max != nil && v > *o.Max {
		return fmt.Errorf("must be <= %v", *o.Max)
	}
	return nil
}

// NumberType accepts finite numbers, including numeric strings.
type NumberType struct {
	opts NumberOptions
}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *NumberType) Coerce(value any) (any, error) {
	f, ok := ToFloat(value)
	if !ok {
		return nil, fmt.Errorf("expected number, got %T", value)
	}
	if err := t.opts.check(f); err != nil {
		return nil, err
	}
	return f, nil
}

// IntegerType accepts whole numbers.
type IntegerType struct {
	opts NumberOptions
}

func (t *IntegerType) Name() string { return "integer" }

func (t *IntegerType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *IntegerType) Coerce(value any) (any, error) {
	f, ok := ToFloat(value)
	if !ok {
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected integer, got float (not a whole number)")
	}
	if err := t.opts.check(f); err != nil {
		return nil, err
	}
	return int(f), nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *BoolType) Coerce(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %T", value)
	}
	return b, nil
}

// StringOptions tunes StringType.
type StringOptions struct {
	// NoBlank rejects empty or whitespace-only strings.
	NoBlank bool
	// Strict rejects numbers instead of stringifying them.
	Strict bool
}

// StringType validates string values.
type StringType struct {
	opts StringOptions
}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *StringType) Coerce(value any) (any, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case json.Number:
		if t.opts.Strict {
			return nil, fmt.Errorf("expected string, got number")
		}
		s = v.String()
	default:
		if t.opts.Strict || !isNumberKind(value) {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		f, _ := ToFloat(value)
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if t.opts.NoBlank && strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("must not be blank")
	}
	return s, nil
}

// EnumeratedType accepts one of a fixed set of values.
type EnumeratedType struct {
	values []any
}

func (t *EnumeratedType) Name() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = fmt.Sprint(v)
	}
	return "enum(" + strings.Join(parts, "|") + ")"
}

func (t *EnumeratedType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *EnumeratedType) Coerce(value any) (any, error) {
	for _, allowed := range t.values {
		if scalarEqual(allowed, value) {
			return allowed, nil
		}
	}
	return nil, fmt.Errorf("value %v not in %s", value, t.Name())
}

// Values returns a copy of the allowed values.
func (t *EnumeratedType) Values() []any {
	return append([]any(nil), t.values...)
}

// FlaglistType accepts "+"-joined combinations of flags, or a single extra.
// Unknown and repeated flags are dropped during coercion; a value with no
// surviving flag is rejected.
type FlaglistType struct {
	flags  []string
	extras []string
}

func (t *FlaglistType) Name() string {
	return "flaglist(" + strings.Join(t.flags, "+") + ")"
}

func (t *FlaglistType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *FlaglistType) Coerce(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected flaglist string, got %T", value)
	}
	for _, extra := range t.extras {
		if s == extra {
			return s, nil
		}
	}
	var kept []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, "+") {
		if seen[part] || !contains(t.flags, part) {
			continue
		}
		seen[part] = true
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no valid flag in %q", s)
	}
	return strings.Join(kept, "+"), nil
}

// InfoArrayType validates fixed-length tuples, one Type per position.
type InfoArrayType struct {
	items []Type
}

func (t *InfoArrayType) Name() string {
	parts := make([]string, len(t.items))
	for i, it := range t.items {
		parts[i] = it.Name()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (t *InfoArrayType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *InfoArrayType) Coerce(value any) (any, error) {
	list, ok := ToList(value)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	if len(list) != len(t.items) {
		return nil, fmt.Errorf("expected %d items, got %d", len(t.items), len(list))
	}
	out := make([]any, len(list))
	for i, item := range list {
		v, err := t.items[i].Coerce(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Items returns the per-position types.
func (t *InfoArrayType) Items() []Type {
	return append([]Type(nil), t.items...)
}

// DataArrayType accepts any non-empty list; the list is copied.
type DataArrayType struct{}

func (t *DataArrayType) Name() string { return "data_array" }

func (t *DataArrayType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *DataArrayType) Coerce(value any) (any, error) {
	list, ok := ToList(value)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("expected non-empty list")
	}
	return Clone(list), nil
}

// AngleType accepts a number of degrees in [-180, 180] or "auto".
type AngleType struct{}

func (t *AngleType) Name() string { return "angle" }

func (t *AngleType) Validate(value any) error {
	_, err := t.Coerce(value)
	return err
}

func (t *AngleType) Coerce(value any) (any, error) {
	if value == "auto" {
		return "auto", nil
	}
	f, ok := ToFloat(value)
	if !ok {
		return nil, fmt.Errorf("expected angle, got %T", value)
	}
	if f > 180 || f < -180 {
		f = math.Mod(f+180, 360)
		if f < 0 {
			f += 360
		}
		f -= 180
	}
	return f, nil
}

// AnyType accepts every value, nil included; the value is copied. Inside
// an InfoArray a nil item stands for an open bound.
type AnyType struct{}

func (t *AnyType) Name() string { return "any" }

func (t *AnyType) Validate(any) error { return nil }

func (t *AnyType) Coerce(value any) (any, error) {
	return Clone(value), nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

func (t *CustomType) Coerce(value any) (any, error) {
	if err := t.validate(value); err != nil {
		return nil, err
	}
	return Clone(value), nil
}

// --- Factory Functions ---

// Number creates a number type. At most one NumberOptions is used.
func Number(opts ...NumberOptions) Type {
	t := &NumberType{}
	if len(opts) > 0 {
		t.opts = opts[0]
	}
	return t
}

// Integer creates an integer type. At most one NumberOptions is used.
func Integer(opts ...NumberOptions) Type {
	t := &IntegerType{}
	if len(opts) > 0 {
		t.opts = opts[0]
	}
	return t
}

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// String creates a string type. At most one StringOptions is used.
func String(opts ...StringOptions) Type {
	t := &StringType{}
	if len(opts) > 0 {
		t.opts = opts[0]
	}
	return t
}

// Enumerated creates a type accepting only the given values.
func Enumerated(values ...any) Type {
	return &EnumeratedType{values: values}
}

// Flaglist creates a "+"-joined flag set type.
func Flaglist(flags []string, extras ...string) Type {
	return &FlaglistType{flags: flags, extras: extras}
}

// InfoArray creates a fixed-length tuple type.
func InfoArray(items ...Type) Type {
	return &InfoArrayType{items: items}
}

// DataArray creates a non-empty list type.
func DataArray() Type { return &DataArrayType{} }

// Angle creates an angle type.
func Angle() Type { return &AngleType{} }

// Any creates a type accepting every value.
func Any() Type { return &AnyType{} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// --- Value helpers ---

// ToFloat converts numeric kinds, json.Number and numeric strings to float64.
// NaN, infinities and booleans are rejected.
func ToFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToList returns value as []any when it is a slice or array.
func ToList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Clone deep-copies maps and lists so that outputs never alias inputs or
// schema defaults. Scalars are returned as is.
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Clone(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	case []float64:
		return append([]float64(nil), v...)
	case []string:
		return append([]string(nil), v...)
	default:
		return value
	}
}

func isNumberKind(value any) bool {
	switch value.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func scalarEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		af, aok := ToFloat(a)
		bf, bok := ToFloat(b)
		if _, isStr := b.(string); isStr {
			return false
		}
		return aok && bok && af == bf
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
