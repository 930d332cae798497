package postfx

import (
	"fmt"

	"github.com/gogpu/postfx/render"
)

// Support is the outcome of a capability check.
type Support struct {
	// Supported is true when every required capability is present.
	Supported bool

	// Missing names the first capability that failed, if any.
	Missing string
}

// Err returns nil when supported, otherwise an error wrapping ErrUnsupported.
func (s Support) Err() error {
	if s.Supported {
		return nil
	}
	return fmt.Errorf("%w: %s unavailable", ErrUnsupported, s.Missing)
}

// CheckSupport queries, in order, image effects, a depth format when
// needsDepth is set, and 3D textures. The first failure short-circuits the
// check. When everything is present and needsDepth is set, a scene depth
// texture is requested from q if it implements render.DepthRequester.
func CheckSupport(q render.CapabilityQuerier, needsDepth bool) Support {
	required := []string{render.CapImageEffects}
	if needsDepth {
		required = append(required, render.CapDepthFormat)
	}
	required = append(required, render.CapTexture3D)

	for _, name := range required {
		if !q.QueryCapability(name) {
			Logger().Warn("postfx: capability check failed", "capability", name)
			return Support{Missing: name}
		}
	}

	if needsDepth {
		if d, ok := q.(render.DepthRequester); ok {
			d.RequestDepthTexture()
		}
	}
	return Support{Supported: true}
}
