package system

import (
	"os/exec"
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"
)

// OpenFilesLimit is the soft descriptor limit requested at startup.
const OpenFilesLimit = 2048

func InitResourceLimits(logger *zap.Logger) {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warn("cannot read open files limit", zap.Error(err))
		return
	}

	if rLimit.Cur >= OpenFilesLimit {
		return
	}
	rLimit.Cur = OpenFilesLimit
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warn("cannot raise open files limit", zap.Error(err))
	} else {
		logger.Debug("open files limit raised", zap.Uint64("limit", uint64(rLimit.Cur)))
	}
}

// DefaultWorkers returns the number of logical CPUs.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// Tool is an external binary the pipeline can call.
type Tool struct {
	Name string
	Bin  string
	Path string
}

// Found reports whether the binary was located on PATH.
func (t Tool) Found() bool {
	return t.Path != ""
}

// ProbeTools looks up each binary on PATH.
func ProbeTools(tools []Tool) []Tool {
	out := make([]Tool, len(tools))
	for i, t := range tools {
		if p, err := exec.LookPath(t.Bin); err == nil {
			t.Path = p
		}
		out[i] = t
	}
	return out
}

// Missing returns the tools that were not found.
func Missing(tools []Tool) []Tool {
	var out []Tool
	for _, t := range tools {
		if !t.Found() {
			out = append(out, t)
		}
	}
	return out
}
