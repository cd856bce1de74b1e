package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is one name/value pair in the wire format the server expects for
// task options. Values are always strings on the wire.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OptionList is the serialized option set sent on task creation and restart.
type OptionList []Option

// OptionValue is one processing option as supplied by a caller, before wire
// coercion. Order is preserved through encoding.
type OptionValue struct {
	Name  string
	Value any
}

// OptionValues is an ordered set of caller-supplied options.
type OptionValues []OptionValue

// Encode coerces values to their wire string form, preserving input order.
// Booleans become "true"/"false", numbers their decimal representation,
// everything else its trimmed string form. Entries with nil values or values
// that trim to the empty string are dropped.
func (vs OptionValues) Encode() OptionList {
	out := make(OptionList, 0, len(vs))
	for _, v := range vs {
		s, ok := FormatValue(v.Value)
		if !ok {
			continue
		}
		out = append(out, Option{Name: v.Name, Value: s})
	}
	return out
}

// FormatValue coerces an option value to its wire string form. The second
// return is false for values that should be dropped (nil, blank strings).
func FormatValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "", false
		}
		return s, true
	default:
		s := strings.TrimSpace(fmt.Sprint(val))
		if s == "" {
			return "", false
		}
		return s, true
	}
}

// OptionKind tags the type of a processing option as declared by the
// processing node.
type OptionKind int

const (
	KindString OptionKind = iota
	KindBool
	KindInt
	KindFloat
	KindPercent
	KindEnum
)

// String returns the server's type keyword for the kind.
func (k OptionKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPercent:
		return "percent"
	case KindEnum:
		return "enum"
	default:
		return "string"
	}
}

// ParseKind maps the server's type keyword to an OptionKind. Unrecognized
// keywords normalize to KindString so unknown future types stay usable.
func ParseKind(s string) OptionKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return KindBool
	case "int", "integer":
		return KindInt
	case "float":
		return KindFloat
	case "percent":
		return KindPercent
	case "enum":
		return KindEnum
	default:
		return KindString
	}
}

// ProcessingOption is one option the processing node supports, normalized
// from the node's schema. Domain is populated only for enum options.
type ProcessingOption struct {
	Name    string
	Kind    OptionKind
	Default string
	Domain  []string
	Help    string
}

// ValidateValue checks a candidate value against the option's kind, and for
// enums against its domain.
func (o ProcessingOption) ValidateValue(value string) error {
	value = strings.TrimSpace(value)
	switch o.Kind {
	case KindBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("option %s: %q is not a boolean", o.Name, value)
		}
	case KindInt:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("option %s: %q is not an integer", o.Name, value)
		}
	case KindFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("option %s: %q is not a number", o.Name, value)
		}
	case KindPercent:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("option %s: %q is not a percentage", o.Name, value)
		}
	case KindEnum:
		for _, d := range o.Domain {
			if d == value {
				return nil
			}
		}
		return fmt.Errorf("option %s: %q is not one of %v", o.Name, value, o.Domain)
	}
	return nil
}
