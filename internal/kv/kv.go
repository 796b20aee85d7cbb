// Package kv is the narrow persistence port behind the cart and the
// admin-authored product list: whole values in, whole values out, one key
// each, last writer wins.
package kv

import "context"

type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the whole value under key.
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
