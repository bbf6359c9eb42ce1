package models

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the type held by a Value.
type ValueKind int

const (
	KindBool ValueKind = iota + 1
	KindNumber
	KindText
)

// Value is one entry of an object's state bag.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Text   string
}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// MarshalYAML writes the value back as a plain scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindNumber:
		if v.Number == math.Trunc(v.Number) && math.Abs(v.Number) < 1<<53 {
			return int64(v.Number), nil
		}
		return v.Number, nil
	case KindText:
		return v.Text, nil
	default:
		return nil, fmt.Errorf("state value has no kind")
	}
}

// UnmarshalYAML accepts boolean, integer, float and string scalars.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: state value must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		*v = Bool(b)
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		*v = Number(f)
	case "!!str":
		*v = Text(n.Value)
	default:
		return fmt.Errorf("line %d: unsupported state value %q", n.Line, n.Value)
	}
	return nil
}
