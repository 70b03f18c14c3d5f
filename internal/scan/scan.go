// Package scan threads an accumulator through a sequence and keeps every
// intermediate state.
package scan

// Scan folds step over source from first to last. The result starts with
// seed and has len(source)+1 elements. Returning false from step stops the
// fold early; the state it returned is still kept.
func Scan[A, T any](source []T, seed A, step func(acc A, item T) (A, bool)) []A {
	out := make([]A, 1, len(source)+1)
	out[0] = seed
	acc := seed
	for _, item := range source {
		var more bool
		acc, more = step(acc, item)
		out = append(out, acc)
		if !more {
			break
		}
	}
	return out
}

// ScanBack folds step over source from last to first. result[k] holds the
// fold of source[k:], so result[0] covers the whole source and the last
// element is seed.
func ScanBack[A, T any](source []T, seed A, step func(item T, acc A) A) []A {
	out := make([]A, len(source)+1)
	out[len(source)] = seed
	for k := len(source) - 1; k >= 0; k-- {
		out[k] = step(source[k], out[k+1])
	}
	return out
}
