package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shirou/gopsutil/v3/process"
)

// frameStats tracks FPS and samples process usage for the debug HUD.
type frameStats struct {
	proc       *process.Process
	frames     int
	start      time.Time
	fps        float64
	rssMB      float64
	cpuPercent float64
}

func newFrameStats() *frameStats {
	s := &frameStats{start: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

// frame counts one frame and reports whether the 100ms window rolled over.
func (s *frameStats) frame() bool {
	s.frames++
	elapsed := time.Since(s.start)
	if elapsed < 100*time.Millisecond {
		return false
	}
	s.fps = float64(s.frames) / elapsed.Seconds()
	s.frames = 0
	s.start = time.Now()

	if s.proc != nil {
		if mem, err := s.proc.MemoryInfo(); err == nil {
			s.rssMB = float64(mem.RSS) / 1024 / 1024
		}
		if cpu, err := s.proc.CPUPercent(); err == nil {
			s.cpuPercent = cpu
		}
	}
	return true
}

func (s *frameStats) lines() []string {
	return []string{
		"FPS: " + strconv.FormatFloat(mgl64.Round(s.fps, 1), 'f', -1, 64),
		fmt.Sprintf("Mem: %.1f MB  CPU: %.0f%%", s.rssMB, s.cpuPercent),
	}
}
