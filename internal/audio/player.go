//go:build !nocgo

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

var (
	// oto allows a single context per process.
	globalContext    *oto.Context
	globalContextErr error
	contextOnce      sync.Once
)

func sharedContext() (*oto.Context, error) {
	contextOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		switch runtime.GOOS {
		case "darwin":
			op.BufferSize = 100 * time.Millisecond
		default:
			op.BufferSize = 50 * time.Millisecond
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			globalContextErr = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-ready
		globalContext = ctx
		log.Debug("audio context ready", "sample_rate", SampleRate, "channels", Channels)
	})
	return globalContext, globalContextErr
}

// Player plays PCM audio. Only one clip plays at a time: Play stops
// whatever was playing before.
type Player struct {
	context *oto.Context

	mu     sync.Mutex
	player *oto.Player
	// keeps the PCM buffer referenced for the lifetime of the oto player
	data []byte

	state atomic.Int32
}

// NewPlayer creates a player on the shared audio context.
func NewPlayer() (*Player, error) {
	ctx, err := sharedContext()
	if err != nil {
		return nil, err
	}
	p := &Player{context: ctx}
	p.state.Store(int32(StateStopped))
	return p, nil
}

// Play starts playback of 16-bit mono PCM at the given volume (0.0 to 1.0).
// It returns as soon as playback has started.
func (p *Player) Play(pcm []byte, volume float64) error {
	if len(pcm) == 0 {
		return errors.New("audio data is empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if PlayerState(p.state.Load()) == StateClosed {
		return errors.New("player is closed")
	}
	p.stopLocked()

	player := p.context.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(clampVolume(volume))
	p.player = player
	p.data = pcm

	player.Play()
	p.state.Store(int32(StatePlaying))
	return nil
}

// Stop halts playback. Stopping an idle player is a no-op.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if p.player == nil {
		return nil
	}
	p.player.Pause()
	err := p.player.Close()
	p.player = nil
	p.data = nil
	if PlayerState(p.state.Load()) != StateClosed {
		p.state.Store(int32(StateStopped))
	}
	if err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}

// IsPlaying reports whether audio is still being played.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return false
	}
	if p.player.IsPlaying() {
		return true
	}
	// playback ran to the end
	_ = p.player.Close()
	p.player = nil
	p.data = nil
	p.state.Store(int32(StateStopped))
	return false
}

// Close stops playback and makes the player unusable. The shared audio
// context stays alive; oto cannot recreate it.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.stopLocked()
	p.state.Store(int32(StateClosed))
	return err
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
