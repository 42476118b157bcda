package lionpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// audioSampleHeaderSize is the fixed wire size of one sample record.
const audioSampleHeaderSize = 640

// LoopKind enumerates how a sample repeats during playback.
type LoopKind uint16

const (
	LoopNone LoopKind = iota
	LoopRestart
	LoopOnce
	LoopOverlap
)

func (k LoopKind) String() string {
	switch k {
	case LoopNone:
		return "none"
	case LoopRestart:
		return "restart"
	case LoopOnce:
		return "once"
	case LoopOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// AudioSampleHeader is the fixed 640-byte record describing one sound
// sample in an LHAudioBankSampleTable block. Offset and Size address the
// sample's waveform bytes inside the LHAudioWaveData block. Unknown fields
// are preserved bit-exact for round-trip; blank fields are padding in the
// original record and encode as zero bytes. Immutable once parsed.
type AudioSampleHeader struct {
	Name           [256]byte
	Unknown0       uint32
	ID             int32
	IsBank         int32
	Size           uint32
	Offset         uint32
	IsClone        int32
	Group          int16
	AtmosGroup     int16
	Unknown1       uint32
	Unknown2       uint32
	Unknown3       uint16
	Unknown4       uint16
	SampleRate     uint32
	Unknown5       uint16
	Unknown6       uint16
	Unknown7       uint16
	Unknown8       uint16
	Unknown9       uint32
	Start          uint32
	End            uint32
	Description    [256]byte
	Priority       uint16
	Unknown10      uint16
	Unknown11      uint16
	Unknown12      uint16
	Loop           uint16
	LoopStart      uint16
	Pan            uint8
	_              [1]byte
	Unknown13      uint16
	Position       mgl32.Vec3
	Volume         uint8
	_              [1]byte
	UserParam      uint16
	Pitch          uint16
	Unknown14      uint16
	PitchDeviation uint16
	Unknown15      uint16
	MinDistance    float32
	MaxDistance    float32
	Scale          float32
	LoopType       LoopKind
	Unknown16      uint16
	Unknown17      uint16
	Unknown18      uint16
	Atmosphere     uint16
	_              [2]byte
}

// NameString returns the sample name up to its NUL terminator.
func (h *AudioSampleHeader) NameString() string {
	return cstring(h.Name[:])
}

// DescriptionString returns the sample description up to its NUL terminator.
func (h *AudioSampleHeader) DescriptionString() string {
	return cstring(h.Description[:])
}

// SetName writes name into the fixed name field, truncating to fit a
// trailing NUL.
func (h *AudioSampleHeader) SetName(name string) {
	clear(h.Name[:])
	copy(h.Name[:len(h.Name)-1], name)
}

func decodeAudioSampleHeader(b []byte) (AudioSampleHeader, error) {
	var h AudioSampleHeader
	if len(b) < audioSampleHeaderSize {
		return h, fmt.Errorf("%w: %d bytes cannot fit a sample header", ErrTruncatedBlock, len(b))
	}
	if err := binary.Read(bytes.NewReader(b[:audioSampleHeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, fmt.Errorf("lionpack: decode sample header: %w", err)
	}
	return h, nil
}

func (h *AudioSampleHeader) encode(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}
