// Package shader holds the dual-filter bloom program: its pass indices,
// uniform names and WGSL sources.
//
// Backends that execute passes on a GPU compile the sources to SPIR-V with
// [Compile]. The software backend emulates the same passes on the CPU and
// only uses the identifiers.
package shader

import (
	"embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// Program is the name of the post-processing program carried in render.Pass.
const Program = "DualFilterBloom"

// Pass indices of Program.
const (
	PassDown         = 0
	PassUp           = 1
	PassGradingBloom = 2
	PassGrading      = 3
	PassBloom        = 4
)

// Uniform names read by the passes.
const (
	HalfPixelX          = "_HalfPixelX"
	HalfPixelY          = "_HalfPixelY"
	SourceTex           = "_SourceTex"
	BloomColor          = "_BloomColor"
	GlobalBloomStrength = "_GlobalBloomStrength"
	Scale               = "_Scale"
	Offset              = "_Offset"
	ClutTex             = "_ClutTex"
)

// CopySource names the WGSL source of the plain (scaled) blit.
const CopySource = "copy"

//go:embed wgsl/*.wgsl
var sources embed.FS

var passSources = map[int]string{
	PassDown:         "down",
	PassUp:           "up",
	PassGradingBloom: "grading_bloom",
	PassGrading:      "grading",
	PassBloom:        "bloom",
}

// PassName returns the source name of a pass index, e.g. "down".
func PassName(pass int) (string, bool) {
	name, ok := passSources[pass]
	return name, ok
}

// Passes returns every pass index of Program in ascending order.
func Passes() []int {
	return []int{PassDown, PassUp, PassGradingBloom, PassGrading, PassBloom}
}

// Source returns the complete WGSL module for the named source: the shared
// fullscreen vertex stage followed by the fragment stage.
func Source(name string) (string, error) {
	vertex, err := sources.ReadFile("wgsl/fullscreen.wgsl")
	if err != nil {
		return "", fmt.Errorf("shader: read vertex stage: %w", err)
	}
	fragment, err := sources.ReadFile("wgsl/" + name + ".wgsl")
	if err != nil {
		return "", fmt.Errorf("shader: unknown source %q: %w", name, err)
	}
	return string(vertex) + "\n" + string(fragment), nil
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string][]uint32)
)

// Compile compiles the named source to SPIR-V words. Results are cached, so
// repeated calls for the same source are cheap.
func Compile(name string) ([]uint32, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if code, ok := cache[name]; ok {
		return code, nil
	}

	src, err := Source(name)
	if err != nil {
		return nil, err
	}

	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s: %w", name, err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	cache[name] = code
	return code, nil
}

// CompilePass compiles the source of a pass index.
func CompilePass(pass int) ([]uint32, error) {
	name, ok := PassName(pass)
	if !ok {
		return nil, fmt.Errorf("shader: unknown pass %d", pass)
	}
	return Compile(name)
}
