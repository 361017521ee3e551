package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidWAV is returned when data is not a PCM RIFF/WAV file.
var ErrInvalidWAV = errors.New("invalid WAV data")

const wavFormatPCM = 1

// WAV is a decoded PCM WAV clip.
type WAV struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Data       []byte
}

// DecodeWAV parses a RIFF/WAV file and returns its PCM payload. Only
// uncompressed PCM is accepted.
//
// espeak streams WAV to stdout without knowing the final length, so the
// RIFF and data chunk sizes may be 0 or 0xFFFFFFFF; in that case the data
// chunk runs to the end of the input.
func DecodeWAV(b []byte) (*WAV, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrInvalidWAV)
	}

	var (
		w      WAV
		gotFmt bool
		pos    = 12
	)
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		rawSize := binary.LittleEndian.Uint32(b[pos+4 : pos+8])
		size := int(rawSize)
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(b) {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
			}
			format := binary.LittleEndian.Uint16(b[body:])
			if format != wavFormatPCM {
				return nil, fmt.Errorf("%w: unsupported format %d", ErrInvalidWAV, format)
			}
			w.Channels = int(binary.LittleEndian.Uint16(b[body+2:]))
			w.SampleRate = int(binary.LittleEndian.Uint32(b[body+4:]))
			w.BitDepth = int(binary.LittleEndian.Uint16(b[body+14:]))
			gotFmt = true
		case "data":
			if !gotFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidWAV)
			}
			end := body + size
			if rawSize == 0 || rawSize == 0xFFFFFFFF || end > len(b) || end < body {
				end = len(b)
			}
			w.Data = b[body:end]
			return &w, nil
		}

		next := body + size
		if rawSize%2 == 1 {
			next++ // chunks are word aligned
		}
		if next <= pos || next > len(b) {
			break
		}
		pos = next
	}

	return nil, fmt.Errorf("%w: no data chunk", ErrInvalidWAV)
}

// CheckFormat verifies the clip can be played by Player as is.
func (w *WAV) CheckFormat() error {
	if w.SampleRate != SampleRate || w.Channels != Channels || w.BitDepth != BitDepth {
		return fmt.Errorf("%w: got %d Hz/%d ch/%d bit, want %d Hz/%d ch/%d bit",
			ErrInvalidWAV, w.SampleRate, w.Channels, w.BitDepth, SampleRate, Channels, BitDepth)
	}
	return nil
}

// EncodeWAV wraps PCM data in a RIFF/WAV header using the playback
// format.
func EncodeWAV(pcm []byte) []byte {
	b := make([]byte, 0, 44+len(pcm))
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(36+len(pcm)))
	b = append(b, "WAVE"...)

	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, wavFormatPCM)
	b = binary.LittleEndian.AppendUint16(b, Channels)
	b = binary.LittleEndian.AppendUint32(b, SampleRate)
	b = binary.LittleEndian.AppendUint32(b, SampleRate*Channels*BytesPerSample)
	b = binary.LittleEndian.AppendUint16(b, Channels*BytesPerSample)
	b = binary.LittleEndian.AppendUint16(b, BitDepth)

	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(pcm)))
	return append(b, pcm...)
}
