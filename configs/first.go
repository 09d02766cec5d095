package configs

import (
	"errors"
)

var ErrValueNotFound = errors.New("value not found")

// First returns the value of the first path found in any source, or the
// zero value. Invalid values panic, since the schema rejects them at load time.
func First[T any](loader Loader, paths ...string) T {
	var value T
	for _, path := range paths {
		err := loader.AssignFirst(path, &value)
		if err == nil {
			return value
		}
		if !errors.Is(err, ErrValueNotFound) {
			panic(err)
		}
	}
	return value
}
