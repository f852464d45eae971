// Package bg provides an abstraction for running functions in the background.
//
// This package lets fieldops control its own concurrency behavior, making it
// possible to switch between asynchronous (production) and synchronous (debug)
// execution modes without changing application code.
package bg

// Runner is an interface for executing functions, either synchronously or asynchronously.
//
// This abstraction takes the "go func()" decision out of application code,
// making it possible to remove all fieldops-owned goroutines for debugging
// purposes while keeping the same code paths.
type Runner interface {
	// Do executes the given function.
	// The implementation determines whether this happens synchronously or asynchronously.
	Do(fn func())
}
