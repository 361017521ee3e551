package audio

// Audio format for speech playback. Engines are asked to produce exactly
// this format.
const (
	SampleRate     = 22050
	Channels       = 1
	BitDepth       = 16
	BytesPerSample = BitDepth / 8
)

// PlayerState represents the current state of the player.
type PlayerState int32

const (
	// StateStopped means nothing is playing.
	StateStopped PlayerState = iota
	// StatePlaying means audio is being played.
	StatePlaying
	// StateClosed means the player was closed and cannot be reused.
	StateClosed
)

func (s PlayerState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
