//go:build !linux || !cgo

package collector

// NewNVML returns nil: the go-nvml binding needs cgo on Linux.
func NewNVML() NvidiaLibrary {
	return nil
}
