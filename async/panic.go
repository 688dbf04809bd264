// Package async holds helpers for work that runs on other goroutines.
package async

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries a value recovered from a panicking function.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// Catch calls fn and returns its error. A panic in fn is recovered and
// returned as a *PanicError instead.
func Catch(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return fn()
}
