// Package audio plays synthesized speech through the system audio device
// using the oto/v3 library. It also decodes the RIFF/WAV output produced by
// speech engines into raw PCM.
package audio
