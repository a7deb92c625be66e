package audio

// decode.go resolves a raw sound file's bytes into a PCM stream the
// scheduler can hand to an ebiten audio.Context player. Grounded on spec
// 4.I/6.1 ("OGG Vorbis and Microsoft WAV, PCM 8-bit or 16-bit") and
// Design Notes 9's flagged 8-bit widening behaviour, preserved exactly as
// the original calibrates it: a 6-bit left shift, not a straight
// unsigned-to-signed 8-to-16-bit expansion.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// streamFormat names the file container decode dispatches on.
type streamFormat int

const (
	formatOGG streamFormat = iota
	formatWAV
)

// sniffFormat inspects a handful of magic bytes to tell OGG from WAV
// without relying on a file extension, since the storage façade (4.K)
// only ever hands back a byte blob.
func sniffFormat(data []byte) (streamFormat, error) {
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		return formatOGG, nil
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return formatWAV, nil
	default:
		return 0, errors.New("audio: unrecognized sound format")
	}
}

// decodedStream is the common product of decoding: a seekable PCM reader
// the context can read indefinitely and its length in bytes. Both
// decoders are ebiten's *WithoutResampling variants, so the stream keeps
// the source file's sample rate.
type decodedStream struct {
	reader io.ReadSeeker
	length int64
}

// decode turns raw file bytes into a decodedStream, widening 8-bit WAV
// PCM to 16-bit first when needed.
func decode(ctx *eaudio.Context, data []byte) (*decodedStream, error) {
	format, err := sniffFormat(data)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatOGG:
		s, err := vorbis.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("audio: vorbis decode: %w", err)
		}
		return &decodedStream{reader: s, length: s.Length()}, nil
	case formatWAV:
		bits, err := wavBitsPerSample(data)
		if err != nil {
			return nil, err
		}
		if bits == 8 {
			data = widenWAV8To16(data)
		}
		s, err := wav.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("audio: wav decode: %w", err)
		}
		return &decodedStream{reader: s, length: s.Length()}, nil
	default:
		return nil, errors.New("audio: unsupported format")
	}
}

// wavChunk is one RIFF sub-chunk's location within the file.
type wavChunk struct {
	id     string
	offset int
	size   int
}

func walkWAVChunks(data []byte) ([]wavChunk, error) {
	if len(data) < 12 {
		return nil, errors.New("audio: wav: truncated header")
	}
	var chunks []wavChunk
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		chunks = append(chunks, wavChunk{id: id, offset: body, size: size})
		pos = body + size
		if size%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}
	return chunks, nil
}

func wavBitsPerSample(data []byte) (int, error) {
	chunks, err := walkWAVChunks(data)
	if err != nil {
		return 0, err
	}
	for _, c := range chunks {
		if c.id == "fmt " && c.offset+16 <= len(data) {
			return int(binary.LittleEndian.Uint16(data[c.offset+14 : c.offset+16])), nil
		}
	}
	return 0, errors.New("audio: wav: missing fmt chunk")
}

// widenWAV8To16 rewrites an 8-bit PCM WAV as 16-bit PCM, shifting each raw
// unsigned sample left by 6 bits with no re-centering. This is
// intentionally not the straight unsigned-to-signed 8-to-16 expansion —
// the original shifts the unsigned byte directly (leaving the waveform
// DC-biased) and by 6 bits rather than 8, and the rewrite preserves that
// exact ear-calibrated behaviour bit-for-bit (spec Design Notes 9), not a
// "corrected" version of it.
func widenWAV8To16(data []byte) []byte {
	chunks, err := walkWAVChunks(data)
	if err != nil {
		return data
	}
	var fmtChunk, dataChunk wavChunk
	for _, c := range chunks {
		switch c.id {
		case "fmt ":
			fmtChunk = c
		case "data":
			dataChunk = c
		}
	}
	if fmtChunk.size == 0 || dataChunk.size == 0 {
		return data
	}

	channels := binary.LittleEndian.Uint16(data[fmtChunk.offset+2 : fmtChunk.offset+4])
	sampleRate := binary.LittleEndian.Uint32(data[fmtChunk.offset+4 : fmtChunk.offset+8])
	srcSamples := data[dataChunk.offset : dataChunk.offset+dataChunk.size]

	widened := make([]byte, len(srcSamples)*2)
	for i, raw := range srcSamples {
		s16 := int16(raw) << 6
		binary.LittleEndian.PutUint16(widened[i*2:], uint16(s16))
	}

	const bitsPerSample16 = 16
	blockAlign := channels * (bitsPerSample16 / 8)
	byteRate := sampleRate * uint32(blockAlign)

	out := bytes.NewBuffer(nil)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(4+8+16+8+len(widened)))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(out, binary.LittleEndian, uint32(16))
	binary.Write(out, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(out, binary.LittleEndian, channels)
	binary.Write(out, binary.LittleEndian, sampleRate)
	binary.Write(out, binary.LittleEndian, byteRate)
	binary.Write(out, binary.LittleEndian, blockAlign)
	binary.Write(out, binary.LittleEndian, uint16(bitsPerSample16))
	out.WriteString("data")
	binary.Write(out, binary.LittleEndian, uint32(len(widened)))
	out.Write(widened)
	return out.Bytes()
}
