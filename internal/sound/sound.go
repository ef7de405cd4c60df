// Package sound plays short synthesized collision sounds for table events.
package sound

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

const sampleRate = beep.SampleRate(44100)

// Manager mixes event sounds onto the speaker. A Manager that failed to
// initialize stays silent; every Play call becomes a no-op.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// NewManager creates a silent manager; call Initialize to open the speaker.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{mixer: &beep.Mixer{}, logger: logger}
}

// Initialize opens the audio device with a 100ms buffer.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Start initializes the speaker when enabled is true. Audio is optional:
// a device failure is logged and the manager stays silent.
func (m *Manager) Start(enabled bool) {
	if !enabled {
		m.logger.Printf("[SOUND] disabled by config")
		return
	}
	if err := m.Initialize(); err != nil {
		m.logger.Printf("[SOUND] audio unavailable, continuing silent: %v", err)
	}
}

// Enabled reports whether sounds reach the speaker.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Close silences everything and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.mixer.Clear()
	speaker.Close()
	m.initialized = false
}

// Handle plays the sound that belongs to a table event, if any.
func (m *Manager) Handle(e table.Event) {
	s := streamerFor(e)
	if s == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// streamerFor maps an event to a finite sound, or nil for silent events.
func streamerFor(e table.Event) beep.Streamer {
	switch e.Category {
	case table.CatLaunch:
		return tone(440, 60*time.Millisecond, 0.25)
	case table.CatWall:
		if e.Key == "pocket" {
			return tone(220, 250*time.Millisecond, 0.3)
		}
		return NewThud(sampleRate, 90, 120*time.Millisecond, loudness(e.NumVal))
	case table.CatRack:
		return tone(880, 80*time.Millisecond, 0.3)
	case table.CatCue:
		return NewThud(sampleRate, 140, 80*time.Millisecond, loudness(e.NumVal))
	}
	return nil
}

// loudness scales a ball speed into a volume in [0.1, 0.5].
func loudness(speed float64) float64 {
	v := speed / table.MaxSpeed
	if v > 1 {
		v = 1
	}
	return 0.1 + 0.4*v
}

func tone(freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return volume(beep.Take(sampleRate.N(d), sine), vol)
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Thud is a decaying low sine, the knock of a ball on a cushion.
type Thud struct {
	sr     beep.SampleRate
	freq   float64
	amp    float64
	pos    int
	length int
}

// NewThud creates a thud of the given pitch, length and peak amplitude.
func NewThud(sr beep.SampleRate, freq float64, d time.Duration, amp float64) *Thud {
	return &Thud{sr: sr, freq: freq, amp: amp, length: sr.N(d)}
}

func (g *Thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.length {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 30)
		s := g.amp * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Thud) Err() error { return nil }
