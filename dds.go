package lionpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	ddsHeaderSize      = 124
	ddsPixelFormatSize = 32
)

// DDSMagic is the four-character magic that prefixes a standalone .dds
// file. Texture blocks store their DDS stream without it; prepend it when
// materializing a texture to disk.
const DDSMagic = "DDS "

// DDSPixelFormat is the 32-byte pixel format section of a DDS header.
type DDSPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// DDSHeader is the standard 124-byte DDS file header as stored inside
// texture blocks, i.e. with the leading "DDS " magic already stripped.
type DDSHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	Format            DDSPixelFormat
	Caps              [4]uint32
	Reserved2         uint32
}

// fourCCBlockSizes maps block-compressed four-character codes to their 4x4
// block byte size. Codes not listed use 16-byte blocks.
var fourCCBlockSizes = map[string]uint32{
	"DXT1": 8,
	"BC1":  8,
	"BC4":  8,
}

// blockCompressedSize computes the size in bytes of a block-compressed
// top-level surface.
func blockCompressedSize(width, height uint32, fourCC [4]byte) uint32 {
	blockSize, ok := fourCCBlockSizes[cstring(fourCC[:])]
	if !ok {
		blockSize = 16
	}
	return ((width + 3) / 4) * ((height + 3) / 4) * blockSize
}

// parseDDSHeader decodes and validates the DDS header at the start of b.
//
// Some Creature Isle DXT5 textures omit PitchOrLinearSize; it is recomputed
// from the surface dimensions and compression format in that case, so the
// returned header always carries a usable texel byte count.
func parseDDSHeader(b []byte) (DDSHeader, error) {
	var h DDSHeader
	if len(b) < ddsHeaderSize {
		return h, fmt.Errorf("%w: %d bytes cannot fit a DDS header", ErrTruncatedBlock, len(b))
	}
	if err := binary.Read(bytes.NewReader(b[:ddsHeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, fmt.Errorf("lionpack: decode DDS header: %w", err)
	}
	if h.Size != ddsHeaderSize || h.Format.Size != ddsPixelFormatSize {
		return h, fmt.Errorf("%w: header size %d, pixel format size %d",
			ErrInvalidDDSHeader, h.Size, h.Format.Size)
	}
	if h.PitchOrLinearSize == 0 {
		h.PitchOrLinearSize = blockCompressedSize(h.Width, h.Height, h.Format.FourCC)
	}
	return h, nil
}
