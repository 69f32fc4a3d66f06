// Package cli contains thin adapters that translate CLI operations into service calls
// and render their results.
package cli

import "github.com/brian-watkins/groupwork-sub000/internal/core/result"

// unwrap folds a handler's two error tiers into one: the business failure, if any,
// becomes the returned error.
func unwrap[T any](res result.Result[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return res.Unwrap()
}
