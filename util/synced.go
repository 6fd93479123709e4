// Package util holds small concurrency helpers shared across packages.
package util

import "sync/atomic"

// SafeFlag is a boolean safe to use concurrently.
type SafeFlag struct {
	value int32
}

// NewSafeFlag creates a cleared SafeFlag.
func NewSafeFlag() *SafeFlag {
	return &SafeFlag{}
}

// Set sets the value of the flag and returns the new value.
func (sf *SafeFlag) Set(newValue bool) bool {
	var intValue int32
	if newValue {
		intValue = 1
	}
	atomic.StoreInt32(&sf.value, intValue)
	return newValue
}

// Value returns the current value of the flag.
func (sf *SafeFlag) Value() bool {
	return atomic.LoadInt32(&sf.value) != 0
}

// TrySet sets the flag if it is clear and reports whether this call set it.
func (sf *SafeFlag) TrySet() bool {
	return atomic.CompareAndSwapInt32(&sf.value, 0, 1)
}
