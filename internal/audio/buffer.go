// Package audio defines the PCM buffer that moves between capability
// adapters and the WAV container codec used at backend boundaries.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

// Common errors
var (
	ErrInvalidFormat = errors.New("invalid audio format")
	ErrEmptyBuffer   = errors.New("empty audio buffer")
)

// Buffer is raw PCM audio plus the format the samples are in. Bit depth and
// channel count must match what the target backend contract requires;
// recognition input is forwarded verbatim at whatever rate the caller
// recorded, synthesis output is always 16-bit mono at the backend's rate.
type Buffer struct {
	PCM        []byte
	SampleRate int
	BitDepth   int
	Channels   int
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 || b.BitDepth <= 0 || b.Channels <= 0 {
		return 0
	}
	byteRate := b.SampleRate * b.Channels * b.BitDepth / 8
	if byteRate == 0 {
		return 0
	}
	return time.Duration(len(b.PCM)) * time.Second / time.Duration(byteRate)
}

// EncodeWAV wraps the PCM in a canonical 44-byte RIFF/WAVE header. The
// header declares the buffer's own rate, depth and channel count.
func (b *Buffer) EncodeWAV() []byte {
	byteRate := b.SampleRate * b.Channels * b.BitDepth / 8
	blockAlign := b.Channels * b.BitDepth / 8
	dataSize := len(b.PCM)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM subchunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(b.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(b.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(b.BitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	return append(header, b.PCM...)
}

// DecodeWAV parses a RIFF/WAVE container into a Buffer. Only uncompressed
// PCM is accepted; unknown chunks before the data chunk are skipped.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < 44 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, ErrInvalidFormat
	}

	var buf *Buffer
	off := 12
	for off+8 <= len(data) {
		chunkID := string(data[off : off+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+chunkSize > len(data) {
			// Tolerate a short final data chunk from truncated writers.
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, ErrInvalidFormat
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, ErrInvalidFormat
			}
			buf = &Buffer{
				Channels:   int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				SampleRate: int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				BitDepth:   int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
		case "data":
			if buf == nil {
				return nil, ErrInvalidFormat
			}
			buf.PCM = make([]byte, chunkSize)
			copy(buf.PCM, data[body:body+chunkSize])
			return buf, nil
		}

		// Chunks are word-aligned.
		if chunkSize%2 == 1 {
			chunkSize++
		}
		off = body + chunkSize
	}

	return nil, ErrInvalidFormat
}
