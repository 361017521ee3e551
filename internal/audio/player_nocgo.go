//go:build nocgo

package audio

import "errors"

// ErrAudioUnavailable is returned by NewPlayer in builds without audio support.
var ErrAudioUnavailable = errors.New("audio not available in nocgo build")

// Player is a stub for builds without CGO.
type Player struct{}

// NewPlayer always fails in nocgo builds.
func NewPlayer() (*Player, error) {
	return nil, ErrAudioUnavailable
}

func (p *Player) Play([]byte, float64) error { return ErrAudioUnavailable }
func (p *Player) Stop() error                { return nil }
func (p *Player) IsPlaying() bool            { return false }
func (p *Player) Close() error               { return nil }
