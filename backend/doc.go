// Package backend is a registry of render.Backend implementations.
//
// Backends register a factory under a name from an init function. The
// software backend is registered on import:
//
//	import _ "github.com/gogpu/postfx/backend/software"
//
// # Backend Selection
//
// Use Default to get the best available backend, or Get to request a
// specific backend by name:
//
//	b := backend.Default(1280, 720)
//
//	b, err := backend.Get("software", 1280, 720)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Hosts that render on a GPU register an adapter over their engine's
// render-texture and blit APIs and select it by name.
package backend
