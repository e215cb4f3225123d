package compute

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features lists the vector extensions of the host CPU.
type Features struct {
	HasSSE2      bool
	HasSSE41     bool
	HasAVX       bool
	HasAVX2      bool
	HasFMA       bool
	HasAVX512    bool
	HasASIMD     bool
	Architecture string
}

func Detect() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasSSE41:     cpu.X86.HasSSE41,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasFMA:       cpu.X86.HasFMA,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasASIMD:     cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// Level names the widest vector extension available. Four float32 lanes fit
// in one register at every level except "scalar".
func (f Features) Level() string {
	switch {
	case f.HasAVX512:
		return "avx512"
	case f.HasAVX2:
		return "avx2"
	case f.HasAVX:
		return "avx"
	case f.HasSSE41:
		return "sse4.1"
	case f.HasSSE2:
		return "sse2"
	case f.HasASIMD:
		return "neon"
	default:
		return "scalar"
	}
}
