//go:build !js || !wasm

package dom

import (
	"errors"

	"github.com/cyberinsights/inkwell/pkg/scheduler"
	"github.com/cyberinsights/inkwell/pkg/vdom"
)

// ErrUnsupported is returned by the DOM renderer outside WASM builds
var ErrUnsupported = errors.New("DOM renderer is only available in WASM builds")

// Root is a mounted widget (stub for non-WASM builds)
type Root struct{}

// Fiber returns nil outside WASM builds
func (r *Root) Fiber() *scheduler.Fiber { return nil }

// Apply applies patches to the DOM (stub)
func (r *Root) Apply(patches []vdom.Patch) error {
	return ErrUnsupported
}

// Unmount is a no-op outside WASM builds
func (r *Root) Unmount() {}
