package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"
	"time"

	"balloonsim/log"
)

const (
	lowFPSThreshold = 45.0
	fpsWarmup       = 3 * time.Second // ignore the startup frames
)

// Profiler captures a CPU profile when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	started         time.Time
	now             func() time.Time
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		started:         time.Now(),
		now:             time.Now,
	}, nil
}

// Observe checks the measured frame rate and starts a capture when it is
// below the threshold past the warmup
func (p *Profiler) Observe(fps float64) {
	if fps <= 0 || fps >= lowFPSThreshold {
		return
	}
	if p.now().Sub(p.started) < fpsWarmup {
		return
	}
	if err := p.CaptureProfile(fmt.Sprintf("fps%.0f", fps)); err == nil {
		log.Warn(log.CatHost, "frame rate dropped, capturing profile", "fps", fps)
	}
}

// CaptureProfile captures a CPU profile in the background
func (p *Profiler) CaptureProfile(reason string) error {
	path, err := p.begin(reason)
	if err != nil {
		return err
	}
	go func() {
		defer p.end()
		if err := p.capture(path, p.captureDuration); err != nil {
			log.ErrorErr(log.CatHost, "capturing cpu profile", err)
		}
	}()
	return nil
}

// CaptureProfileSync captures a CPU profile and blocks until it is written.
// The cooldown does not apply.
func (p *Profiler) CaptureProfileSync(reason string, duration time.Duration) (string, error) {
	p.mu.Lock()
	if p.isProfiling {
		p.mu.Unlock()
		return "", errors.New("already profiling")
	}
	p.isProfiling = true
	p.mu.Unlock()
	defer p.end()

	path := p.profilePath(reason)
	return path, p.capture(path, duration)
}

// IsProfiling reports whether a capture is running
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) begin(reason string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := p.now().Sub(p.lastCaptureTime); since < p.captureCooldown {
		return "", fmt.Errorf("capture on cooldown (last capture was %v ago)", since)
	}
	if p.isProfiling {
		return "", errors.New("already profiling")
	}
	p.isProfiling = true
	p.lastCaptureTime = p.now()
	return p.profilePath(reason), nil
}

func (p *Profiler) end() {
	p.mu.Lock()
	p.isProfiling = false
	p.mu.Unlock()
}

func (p *Profiler) profilePath(reason string) string {
	name := fmt.Sprintf("frame-drop-%s-%s.cpu.prof", p.now().Format("20060102-150405"), reason)
	return filepath.Join(p.profilesDir, name)
}

func (p *Profiler) capture(path string, d time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("starting cpu profile: %w", err)
	}
	time.Sleep(d)
	pprof.StopCPUProfile()

	log.Info(log.CatHost, "cpu profile saved", "path", path, "view", "go tool pprof -http=:8080 "+path)
	return nil
}
