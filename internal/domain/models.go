package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Option is one selectable item of a dropdown.
//
// Options are passed around as *Option and the pointer is the identity:
// two options with equal Label and Value are still different options.
type Option struct {
	Label string
	Value Value
}

// NewOption creates an option with the given label and value
func NewOption(label string, value Value) *Option {
	return &Option{Label: label, Value: value}
}

// ValueKind tells which variant a Value holds
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
)

// Value is the identity payload of an option: a string or a number
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// StringValue wraps a string payload
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// NumberValue wraps a numeric payload
func NumberValue(n float64) Value {
	return Value{kind: ValueNumber, num: n}
}

// ValueOf converts a decoded config value into a Value.
// Only strings and numbers are accepted.
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case string:
		return StringValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case float64:
		return NumberValue(t), nil
	case Value:
		return t, nil
	default:
		return Value{}, fmt.Errorf("option value must be a string or a number, got %T", v)
	}
}

// Kind returns the variant held by the value
func (v Value) Kind() ValueKind {
	return v.kind
}

// Encode returns the payload in the form the config file stores it:
// integral numbers in int64 range come back as int64 so they round-trip as TOML integers.
func (v Value) Encode() interface{} {
	if v.kind == ValueNumber {
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<63 {
			return int64(v.num)
		}
		return v.num
	}
	return v.str
}

// Equal reports whether two values hold the same payload
func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && v.str == other.str && v.num == other.num
}

func (v Value) String() string {
	if v.kind == ValueNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Labels returns the labels of the given options in order
func Labels(options []*Option) []string {
	labels := make([]string, 0, len(options))
	for _, opt := range options {
		if opt != nil {
			labels = append(labels, opt.Label)
		}
	}
	return labels
}

// Values returns the values of the given options in order
func Values(options []*Option) []Value {
	values := make([]Value, 0, len(options))
	for _, opt := range options {
		if opt != nil {
			values = append(values, opt.Value)
		}
	}
	return values
}

// FindByValue returns the first option whose value equals v
func FindByValue(options []*Option, v Value) *Option {
	for _, opt := range options {
		if opt != nil && opt.Value.Equal(v) {
			return opt
		}
	}
	return nil
}
