package internal

import "reflect"

// Same reports whether a and b should be considered the same value.
//
// Pointers, maps, slices and channels compare by reference, comparable values
// with ==, and everything else structurally with reflect.DeepEqual.
// Functions are never the same unless both are nil.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}

	if va.Type().Comparable() {
		return isEqual(a, b)
	}

	return reflect.DeepEqual(a, b)
}

// isEqual falls back to a deep comparison when == panics on an
// interface field holding an uncomparable value.
func isEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()

	return a == b
}
