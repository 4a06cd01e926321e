// Package registry provides a generic thread-safe table for values indexed
// by key.
//
// The grammar package builds its operator and transform tables on Registry,
// which is why lookups take a read lock only: parsing, serializing, and
// evaluating all read the same tables that registration calls mutate.
//
//	r := registry.New[string, int]()
//	r.Register("one", 1)
//
//	value, ok := r.Get("one")
//	if ok {
//	    fmt.Println(value) // Output: 1
//	}
//
// All methods are safe for concurrent use. Range iterates over a snapshot,
// so entries may be registered or deleted during iteration without
// affecting the iteration itself.
package registry
