package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/tetris"
)

// MaxVoices bounds the number of streamers mixed at once. Effects played
// while the mixer is full are dropped.
const MaxVoices = 32

// Subscriber is the part of a session a Player attaches to.
type Subscriber interface {
	SubscribeAll(fn tetris.Listener) (unsubscribe func())
}

// Player mixes sound effects and background music.
//
// A Player renders into a single mixer. Start hands the mixer to the system
// speaker; without Start the mixed output can be pulled from Output.
type Player struct {
	mu      sync.Mutex
	cfg     Config
	sr      beep.SampleRate
	mixer   *beep.Mixer
	out     *effects.Volume
	music   *beep.Ctrl
	muted   bool
	started bool
	// speakerHeld records whether lock took the speaker lock, so unlock
	// releases it even if started changed in between.
	speakerHeld bool
	played  [effectCount]int
	dropped int
}

// NewPlayer creates a player. It does not open an audio device.
func NewPlayer(cfg Config) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Player{
		cfg:   cfg,
		sr:    cfg.sampleRate(),
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
	}
	p.out = &effects.Volume{Streamer: p.mixer, Base: 2}
	p.applyVolume()
	return p, nil
}

// Start opens the speaker and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(p.cfg.Buffer)); err != nil {
		return err
	}
	speaker.Play(p.out)
	p.started = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	if p.stop() {
		speaker.Close()
	}
}

// stop clears all sounds and reports whether the speaker was started.
func (p *Player) stop() bool {
	p.lock()
	defer p.unlock()
	p.mixer.Clear()
	p.music = nil
	started := p.started
	p.started = false
	return started
}

// Output is the player's mixed signal. It must not be read while the
// player is started.
func (p *Player) Output() beep.Streamer {
	return p.out
}

// SampleRate returns the output sample rate.
func (p *Player) SampleRate() beep.SampleRate {
	return p.sr
}

// Play queues an effect. It reports false if the effect was not queued
// because the player is muted or already at MaxVoices.
func (p *Player) Play(e Effect) bool {
	p.lock()
	defer p.unlock()

	if p.muted {
		return false
	}
	if p.mixer.Len() >= MaxVoices {
		p.dropped++
		return false
	}
	p.mixer.Add(Effects[e].Streamer(p.sr, p.cfg.EffectsVolume))
	p.played[e]++
	return true
}

// Played returns how many times e has been queued.
func (p *Player) Played(e Effect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[e]
}

// Dropped returns how many effects were dropped at MaxVoices.
func (p *Player) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Voices returns the number of streamers currently in the mixer.
func (p *Player) Voices() int {
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// StartMusic begins the looping melody unless it is already playing or
// music is disabled.
func (p *Player) StartMusic() {
	p.lock()
	defer p.unlock()

	if !p.cfg.Music || p.music != nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: beep.Iterate(func() beep.Streamer {
		// Read under the speaker lock; picks up volume changes each loop.
		return Melody.Streamer(p.sr, p.cfg.MusicVolume)
	})}
	p.mixer.Add(p.music)
}

// StopMusic ends the melody.
func (p *Player) StopMusic() {
	p.lock()
	defer p.unlock()

	if p.music == nil {
		return
	}
	// A Ctrl without a streamer drains out of the mixer.
	p.music.Streamer = nil
	p.music = nil
}

// PauseMusic pauses or resumes the melody in place.
func (p *Player) PauseMusic(paused bool) {
	p.lock()
	defer p.unlock()

	if p.music != nil {
		p.music.Paused = paused
	}
}

// MusicPlaying reports whether the melody is running and not paused.
func (p *Player) MusicPlaying() bool {
	p.lock()
	defer p.unlock()
	return p.music != nil && !p.music.Paused
}

// ToggleMusic switches background music on or off and returns the new
// setting.
func (p *Player) ToggleMusic() bool {
	p.lock()
	p.cfg.Music = !p.cfg.Music
	on := p.cfg.Music
	p.unlock()

	if on {
		p.StartMusic()
	} else {
		p.StopMusic()
	}
	return on
}

// ToggleMute silences or restores all output and returns true when the
// player is now audible.
func (p *Player) ToggleMute() bool {
	p.lock()
	defer p.unlock()

	p.muted = !p.muted
	p.applyVolume()
	return !p.muted
}

// Muted reports whether output is silenced.
func (p *Player) Muted() bool {
	p.lock()
	defer p.unlock()
	return p.muted
}

// SetVolume sets the master volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.lock()
	defer p.unlock()

	p.cfg.MasterVolume = min(max(v, 0), 1)
	p.applyVolume()
}

// SetEffectsVolume sets the effects volume, clamped to [0, 1]. It applies
// to effects played afterwards.
func (p *Player) SetEffectsVolume(v float64) {
	p.lock()
	defer p.unlock()
	p.cfg.EffectsVolume = min(max(v, 0), 1)
}

// SetMusicVolume sets the music volume, clamped to [0, 1]. It applies from
// the next repetition of the melody.
func (p *Player) SetMusicVolume(v float64) {
	p.lock()
	defer p.unlock()
	p.cfg.MusicVolume = min(max(v, 0), 1)
}

// Volume returns the master volume.
func (p *Player) Volume() float64 {
	p.lock()
	defer p.unlock()
	return p.cfg.MasterVolume
}

// Attach plays sounds for the events of s.
func (p *Player) Attach(s Subscriber) (detach func()) {
	return s.SubscribeAll(p.Handle)
}

// Handle plays the sounds for one session event.
func (p *Player) Handle(ev tetris.Event) {
	switch ev.Kind {
	case tetris.GameStarted:
		p.Play(GameStart)
		p.StartMusic()
		p.PauseMusic(false)
	case tetris.PieceMoved:
		// Gravity and soft drop move silently.
		if ev.Dx != 0 {
			p.Play(Move)
		}
	case tetris.PieceRotated:
		p.Play(Rotate)
	case tetris.PieceLocked:
		p.Play(PiecePlaced)
	case tetris.HardDrop:
		p.Play(HardDrop)
	case tetris.LinesCleared:
		p.Play(LineClear)
		if ev.Lines() == 4 {
			p.Play(Tetris)
		}
	case tetris.LevelUp:
		p.Play(LevelUp)
	case tetris.Hold:
		p.Play(Hold)
	case tetris.Paused:
		p.PauseMusic(true)
	case tetris.Resumed:
		p.PauseMusic(false)
	case tetris.GameOver:
		p.StopMusic()
		p.Play(GameOver)
	}
}

// applyVolume maps the linear master volume onto the base-2 volume effect.
// Callers hold the lock.
func (p *Player) applyVolume() {
	if p.muted || p.cfg.MasterVolume <= 0 {
		p.out.Silent = true
		return
	}
	p.out.Silent = false
	p.out.Volume = math.Log2(p.cfg.MasterVolume)
}

func (p *Player) lock() {
	p.mu.Lock()
	if p.started {
		speaker.Lock()
		p.speakerHeld = true
	}
}

func (p *Player) unlock() {
	if p.speakerHeld {
		p.speakerHeld = false
		speaker.Unlock()
	}
	p.mu.Unlock()
}
