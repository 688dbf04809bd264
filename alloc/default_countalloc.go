//go:build countalloc

package alloc

// Default returns the runtime counter in countalloc builds.
func Default() Counter {
	return Runtime{}
}
