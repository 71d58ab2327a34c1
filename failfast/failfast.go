// Package failfast provides constructor-time invariant checks that
// panic immediately instead of threading a nil/invalid value deeper
// into the runtime where it would surface as a confusing failure far
// from its cause.
package failfast

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// Err panics if err != nil, with a stack trace attached for debugging.
func Err(err error) {
	if err != nil {
		panic(fmt.Errorf("fail-fast: %w\n%s", err, debug.Stack()))
	}
}

// If panics if condition is false.
func If(condition bool, message string, args ...interface{}) {
	if !condition {
		panic(fmt.Errorf("fail-fast: "+message, args...))
	}
}

// NotNil panics if ptr is nil, including a typed nil pointer or nil
// function value hiding behind an interface.
func NotNil(ptr interface{}, name string) {
	if ptr == nil {
		panic(fmt.Errorf("fail-fast: %s is nil", name))
	}
	v := reflect.ValueOf(ptr)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		if v.IsNil() {
			panic(fmt.Errorf("fail-fast: %s is nil", name))
		}
	}
}
