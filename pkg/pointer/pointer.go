// Package pointer provides shorthand for taking the address of values.
package pointer

func Uint64(value uint64) *uint64 {
	return &value
}

func String(value string) *string {
	return &value
}

func Int(value int) *int {
	return &value
}
