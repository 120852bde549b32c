package ldgraph

import (
	"math"
	"reflect"
	"strings"
)

// AreEqual reports whether two property values are the same value.
//
// Primitives compare by value, with NaN equal to NaN and numbers compared
// across Go numeric types. Value wrappers compare by (@value, @type,
// @language). Nodes and references compare by @id only, and only when both
// sides carry a string @id: a node with a missing or non-string @id is equal
// to nothing, itself included.
func AreEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka == KindPrimitive || kb == KindPrimitive {
		return ka == kb && primitiveEqual(a, b)
	}
	oa, okA := a.(*Object)
	ob, okB := b.(*Object)
	if !okA || !okB || oa == nil || ob == nil {
		return false
	}
	switch {
	case ka == KindValue && kb == KindValue:
		return memberEqual(oa, ob, KeywordValue) &&
			memberEqual(oa, ob, KeywordType) &&
			memberEqual(oa, ob, KeywordLanguage)
	case isNodeKind(ka) && isNodeKind(kb):
		ia, okA := oa.ID()
		ib, okB := ob.ID()
		return okA && okB && ia == ib
	}
	return false
}

func isNodeKind(k Kind) bool { return k == KindNode || k == KindReference }

func memberEqual(a, b *Object, key string) bool {
	va, okA := a.Get(key)
	vb, okB := b.Get(key)
	if okA != okB {
		return false
	}
	return !okA || primitiveEqual(va, vb)
}

func primitiveEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA || okB {
		if !okA || !okB {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return va.String() == vb.String()
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		return va.Bool() == vb.Bool()
	}
	return false
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// AddPropertyValue merges value into node[key].
//
// An absent property is set to the bare value. A present property that does
// not already hold an equal value grows into an ordered sequence; equal values
// are dropped, so repeated calls are idempotent. Values must be primitives,
// references with a usable @id, or value wrappers around a primitive; a value
// wrapper holding only @value is stored as its primitive.
func AddPropertyValue(node *Object, key string, value any) error {
	if node == nil || KindOf(node) != KindNode {
		return &Error{Code: CodeWrongKind, Message: "property values can only be added to nodes"}
	}
	v, err := normalizePropertyValue(value)
	if err != nil {
		return err
	}

	old, ok := node.Get(key)
	if !ok {
		node.Set(key, v)
		return nil
	}
	if seq, isSeq := old.([]any); isSeq {
		for _, e := range seq {
			if AreEqual(e, v) {
				return nil
			}
		}
		node.Set(key, append(seq[:len(seq):len(seq)], v))
		return nil
	}
	if AreEqual(old, v) {
		return nil
	}
	node.Set(key, []any{old, v})
	return nil
}

func normalizePropertyValue(value any) (any, error) {
	switch k := KindOf(value); k {
	case KindPrimitive:
		return value, nil
	case KindReference:
		id, ok := value.(*Object).ID()
		if !ok {
			return nil, &Error{Code: CodeInvalidValue, Message: "reference @id must be a string"}
		}
		if strings.HasPrefix(id, BlankNodePrefix) {
			return nil, &Error{Code: CodeInvalidValue, ID: id, Message: "blank node identifiers are not supported"}
		}
		return value, nil
	case KindValue:
		o := value.(*Object)
		payload, _ := o.Get(KeywordValue)
		if KindOf(payload) != KindPrimitive {
			return nil, &Error{Code: CodeInvalidValue, Message: "value objects must wrap a primitive"}
		}
		if o.Len() == 1 {
			return payload, nil
		}
		return value, nil
	default:
		return nil, &Error{Code: CodeInvalidValue, Message: "cannot store a " + k.String() + " as a property value"}
	}
}

// ForEachPropertyValue calls fn once per element when o[key] is a sequence,
// with the element index, and once with index -1 otherwise. Absent properties
// produce no calls.
func ForEachPropertyValue(o *Object, key string, fn func(v any, index int)) {
	v, ok := o.Get(key)
	if !ok {
		return
	}
	if seq, isSeq := v.([]any); isSeq {
		for i, e := range seq {
			fn(e, i)
		}
		return
	}
	fn(v, -1)
}
