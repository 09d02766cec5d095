package vars

import "strings"

// FirstNonZero returns the first value that is not the zero value of T.
// Callers list candidates from the most to the least specific source:
// command line, config file, environment, built-in default.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

func PtrTo[T any](v T) *T {
	return &v
}

func DerefOrZero[T any](ptr *T) (ret T) {
	if ptr == nil {
		return
	}
	return *ptr
}

func StrToBool(str string) bool {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "1", "on":
		return true
	}
	return false
}
