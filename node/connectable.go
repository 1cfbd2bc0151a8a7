package node

import "fmt"

// IndexOutOfRange panics with a diagnostic naming kind (typically produced
// with fmt.Sprintf("%T", node)) and the valid [0, count) range, for use by
// RuntimeConnectable.InputAt/OutputAt implementations on an out-of-bounds
// index.
func IndexOutOfRange(kind string, index, count int) {
	panic(fmt.Sprintf("%s: index %d out of range, have %d endpoint(s) [0, %d)", kind, index, count, count))
}
