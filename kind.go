package ldgraph

import "reflect"

// KindOf classifies v. The result for an *Object is memoized on the object, so
// later mutations do not change its kind until Reclassify is called.
func KindOf(v any) Kind {
	if o, ok := v.(*Object); ok && o != nil && o.kind != 0 {
		return o.kind
	}
	return Reclassify(v)
}

// Reclassify recomputes the kind of v, replacing any memoized result.
func Reclassify(v any) Kind {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return KindInvalid
		}
		x.kind = classifyObject(x)
		return x.kind
	case []any:
		return KindArray
	}
	if isPrimitive(v) {
		return KindPrimitive
	}
	return KindInvalid
}

// pinKind overrides the memo; used once an object is known to be a stored node.
func pinKind(o *Object, k Kind) { o.kind = k }

func classifyObject(o *Object) Kind {
	switch {
	case o.Has(KeywordGraph):
		return KindGraph
	case o.Has(KeywordList):
		return KindList
	case o.Has(KeywordSet):
		return KindSet
	case o.Has(KeywordValue):
		return KindValue
	case o.Len() == 1 && o.Has(KeywordID):
		return KindReference
	default:
		return KindNode
	}
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case nil, bool, string, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// isNodeLike reports whether v is an *Object classified as node or reference.
func isNodeLike(v any) (*Object, bool) {
	o, ok := v.(*Object)
	if !ok || o == nil {
		return nil, false
	}
	switch KindOf(o) {
	case KindNode, KindReference:
		return o, true
	}
	return nil, false
}
