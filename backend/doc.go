// Package backend keeps the registry of GPU context backends.
//
// Backend packages register a factory from their init() function, so
// importing a backend makes it selectable at runtime:
//
//	import _ "github.com/gogpu/frame/backend/software"
//
// # Backend Selection
//
// Use Default to get the best available context, or Get to request a
// specific backend by name:
//
//	ctx, err := backend.Default()
//	if err != nil {
//		return err
//	}
//	defer backend.Close(ctx)
//
//	// Or request a specific backend
//	ctx, err := backend.Get(backend.Software)
//
// # Available Backends
//
//   - "native": gogpu/wgpu HAL compute (needs a GPU adapter)
//   - "software": in-memory reference context (always available)
package backend
