package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	pcm := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	data := Encode(pcm, 16000, 1, 16)

	if len(data) != headerSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", headerSize+len(pcm), len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("expected RIFF/WAVE header")
	}

	info, err := Decode(data)
	if err != nil {
		t.Fatalf("failed to decode encoded payload: %v", err)
	}
	if info.SampleRate != 16000 {
		t.Errorf("expected sample rate 16000, got %d", info.SampleRate)
	}
	if info.NumChannels != 1 {
		t.Errorf("expected 1 channel, got %d", info.NumChannels)
	}
	if info.BitsPerSample != 16 {
		t.Errorf("expected 16 bits per sample, got %d", info.BitsPerSample)
	}
	if info.DataSize != uint32(len(pcm)) {
		t.Errorf("expected data size %d, got %d", len(pcm), info.DataSize)
	}
}

func TestDecode_Rejections(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too_short", []byte("RIF")},
		{"not_riff", []byte("JUNKxxxxWAVEmore-bytes-here")},
		{"not_wave", append([]byte("RIFF\x00\x00\x00\x00"), []byte("JUNK")...)},
		{"no_data_chunk", Encode(nil, 16000, 1, 16)[:36]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); err == nil {
				t.Errorf("expected decode error for %s", tc.name)
			}
		})
	}
}

func TestDecode_NonPCMFormat(t *testing.T) {
	data := Encode([]byte{0, 0}, 16000, 1, 16)
	// Overwrite the audio format field with IEEE float (3).
	binary.LittleEndian.PutUint16(data[20:22], 3)

	if _, err := Decode(data); err == nil {
		t.Error("expected error for non-PCM format")
	}
}

func TestDecode_TooManyChannels(t *testing.T) {
	data := Encode([]byte{0, 0}, 16000, 1, 16)
	binary.LittleEndian.PutUint16(data[22:24], 6)

	if _, err := Decode(data); err == nil {
		t.Error("expected error for 6 channels")
	}
}

func TestDecode_SkipsUnknownChunks(t *testing.T) {
	// Build RIFF/WAVE with a LIST chunk before fmt, as some recorders emit.
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	buf.WriteString("WAVE")

	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("INFO")

	encoded := Encode([]byte{1, 2, 3, 4}, 44100, 2, 16)
	buf.Write(encoded[12:]) // fmt + data chunks

	info, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to decode payload with LIST chunk: %v", err)
	}
	if info.SampleRate != 44100 || info.NumChannels != 2 {
		t.Errorf("unexpected format: %+v", info)
	}
}

func TestDecode_TruncatedDataChunkTolerated(t *testing.T) {
	data := Encode(make([]byte, 100), 16000, 1, 16)
	truncated := data[:len(data)-40]

	info, err := Decode(truncated)
	if err != nil {
		t.Fatalf("expected truncated data chunk to be tolerated: %v", err)
	}
	if info.DataSize != 60 {
		t.Errorf("expected data size 60, got %d", info.DataSize)
	}
}
