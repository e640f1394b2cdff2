// Package wav decodes WAV headers from recorded payloads and wraps raw PCM
// into a WAV container. The recorder delivers whole files in memory, so the
// package works on byte slices rather than streams.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const headerSize = 44

// Info describes the format of a WAV payload.
type Info struct {
	SampleRate    uint32
	NumChannels   uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Decode parses and validates the header of a WAV payload.
func Decode(data []byte) (Info, error) {
	if len(data) < 12 {
		return Info{}, fmt.Errorf("payload too short for a RIFF header: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return Info{}, fmt.Errorf("not a valid RIFF file")
	}
	if string(data[8:12]) != "WAVE" {
		return Info{}, fmt.Errorf("not a valid WAVE file")
	}

	var info Info
	fmtSeen := false
	rest := data[12:]

	for len(rest) >= 8 {
		chunkID := string(rest[0:4])
		chunkSize := binary.LittleEndian.Uint32(rest[4:8])
		body := rest[8:]
		if uint32(len(body)) < chunkSize {
			// Tolerate a data chunk whose declared size overruns the payload;
			// some recorders finalize the header before the last flush.
			if chunkID == "data" {
				info.DataSize = uint32(len(body))
				return validate(info, fmtSeen)
			}
			return Info{}, fmt.Errorf("truncated %q chunk: want %d bytes, have %d", chunkID, chunkSize, len(body))
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Info{}, fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return Info{}, fmt.Errorf("only PCM format is supported, got format %d", audioFormat)
			}
			info.NumChannels = binary.LittleEndian.Uint16(body[2:4])
			info.SampleRate = binary.LittleEndian.Uint32(body[4:8])
			info.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			fmtSeen = true
		case "data":
			info.DataSize = chunkSize
			return validate(info, fmtSeen)
		}

		// Chunks are word-aligned; skip the pad byte on odd sizes.
		advance := chunkSize + chunkSize%2
		if uint32(len(body)) < advance {
			break
		}
		rest = body[advance:]
	}

	return Info{}, fmt.Errorf("no data chunk found")
}

func validate(info Info, fmtSeen bool) (Info, error) {
	if !fmtSeen {
		return Info{}, fmt.Errorf("no fmt chunk before data")
	}
	if info.NumChannels != 1 && info.NumChannels != 2 {
		return Info{}, fmt.Errorf("only mono and stereo are supported, got %d channels", info.NumChannels)
	}
	if info.SampleRate == 0 {
		return Info{}, fmt.Errorf("invalid sample rate 0")
	}
	return info, nil
}

// Encode wraps raw PCM samples in a WAV container.
func Encode(pcm []byte, sampleRate uint32, numChannels, bitsPerSample uint16) []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(pcm))

	dataSize := uint32(len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, dataSize+36)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, numChannels)
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	byteRate := sampleRate * uint32(numChannels) * uint32(bitsPerSample) / 8
	binary.Write(&buf, binary.LittleEndian, byteRate)
	blockAlign := numChannels * bitsPerSample / 8
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, bitsPerSample)

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}
