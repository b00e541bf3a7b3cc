package memo

import "fmt"

// Key2 is a composite key for two arguments.
// Equality is field-wise, so Key2[int, string]{1, "2"} never collides with
// Key2[int, string]{12, ""}.
type Key2[A, B comparable] struct {
	First  A
	Second B
}

// KeyOf2 builds a Key2.
func KeyOf2[A, B comparable](a A, b B) Key2[A, B] {
	return Key2[A, B]{First: a, Second: b}
}

func (k Key2[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", k.First, k.Second)
}
