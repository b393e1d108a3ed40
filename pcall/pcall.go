// Package pcall invokes reflected handler methods while containing
// panics, so one broken handler cannot take the component loop down.
package pcall

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	"go.uber.org/zap"
)

// Pcall0 calls a method that returns nothing.
func Pcall0(log *zap.Logger, method reflect.Method, args []reflect.Value) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("handler panic",
				zap.String("method", method.Name),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	method.Func.Call(args)
}

// Pcall1 calls a method whose last return value is an error.
func Pcall1(log *zap.Logger, method reflect.Method, args []reflect.Value) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if s, ok := rec.(string); ok {
				err = errors.New(s)
			} else {
				err = fmt.Errorf("handler %s panicked: %v", method.Name, rec)
			}
			log.Error("handler panic",
				zap.String("method", method.Name),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	r := method.Func.Call(args)
	if len(r) == 0 {
		return nil
	}
	last := r[len(r)-1]
	if !last.IsValid() || ((last.Kind() == reflect.Pointer || last.Kind() == reflect.Interface) && last.IsNil()) {
		return nil
	}
	if e, ok := last.Interface().(error); ok {
		return e
	}
	return nil
}
