package lionpack

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// packState tracks the single-use lifecycle of a Pack instance.
type packState uint8

const (
	stateEmpty packState = iota
	stateAuthoring
	stateLoaded
	stateWritten
	stateCorrupt
)

// Pack is the facade over one pack file: it owns the block store and every
// collection decoded from it. A Pack is single-use — one successful load
// pass, or one authoring pass ending in a write — and is not safe for
// concurrent use. Open one Pack per file; independent instances share
// nothing and may be driven from separate goroutines.
type Pack struct {
	name         string
	state        packState
	blocks       *blockStore
	maxBlockSize uint64
	logger       *slog.Logger

	infoLookup    []InfoLookupEntry
	bodyLookup    []BodyLookupEntry
	sampleHeaders []AudioSampleHeader
	audioUnknown  uint16

	textures    map[string]Texture
	textureKeys []string
	meshes      [][]byte
	animations  [][]byte
	sounds      [][]byte
}

// New creates an empty Pack ready for one Open or one authoring pass.
func New(opts ...Option) *Pack {
	p := &Pack{
		blocks:       newBlockStore(),
		maxBlockSize: math.MaxUint32,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Pack) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.logger
}

// Open reads and decodes the pack file at path. It may be called once on a
// fresh Pack; a loaded, authoring, or written Pack rejects it.
func (p *Pack) Open(path string) error {
	if p.state != stateEmpty {
		return fmt.Errorf("lionpack: open %s: %w", path, ErrAlreadyFinalized)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lionpack: open %s: %w", path, err)
	}
	p.name = path
	return p.load(data)
}

// OpenBuffer decodes a pack file from an in-memory buffer. The Pack's
// reported name is "buffer".
func (p *Pack) OpenBuffer(data []byte) error {
	if p.state != stateEmpty {
		return fmt.Errorf("lionpack: open buffer: %w", ErrAlreadyFinalized)
	}
	p.name = "buffer"
	return p.load(data)
}

// load decodes data and finalizes the state. A decode failure marks the
// Pack corrupt; there is no partial-result or retry path.
func (p *Pack) load(data []byte) error {
	if err := p.decode(data); err != nil {
		p.state = stateCorrupt
		return fmt.Errorf("lionpack: load %s: %w", p.name, err)
	}
	p.state = stateLoaded
	return nil
}

// decode runs the full load pass: framing, then per-kind resolution and
// extraction for whichever block kinds are present. The kinds are
// independent; a file may be a mesh pack, an anim pack, a sound pack, or
// any combination.
func (p *Pack) decode(data []byte) error {
	if err := readBlocks(data, p.blocks); err != nil {
		return err
	}
	p.log().Debug("blocks read", "file", p.name, "blocks", p.blocks.len())

	// Mesh pack: INFO implies textures and requires MESHES. A MESHES block
	// without INFO still decodes its meshes.
	if p.blocks.has(blockInfo) {
		if err := p.decodeTextures(); err != nil {
			return err
		}
		if !p.blocks.has(blockMeshes) {
			return fmt.Errorf("%w: %q in mesh pack", ErrMissingBlock, blockMeshes)
		}
	}
	if p.blocks.has(blockMeshes) {
		if err := p.decodeMeshes(); err != nil {
			return err
		}
	}

	// Anim pack.
	if p.blocks.has(blockBody) {
		if err := p.decodeAnimations(); err != nil {
			return err
		}
	}

	// Sound pack.
	if p.blocks.has(blockAudioTable) {
		if err := p.decodeSounds(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pack) decodeTextures() error {
	data, err := p.blocks.get(blockInfo)
	if err != nil {
		return fmt.Errorf("%w: %q in mesh pack", ErrMissingBlock, blockInfo)
	}
	if p.infoLookup, err = resolveInfo(data); err != nil {
		return err
	}
	if p.textures, p.textureKeys, err = extractTextures(p.blocks, p.infoLookup); err != nil {
		return err
	}
	p.log().Debug("textures extracted", "file", p.name, "textures", len(p.textures))
	return nil
}

func (p *Pack) decodeMeshes() error {
	data, err := p.blocks.get(blockMeshes)
	if err != nil {
		return fmt.Errorf("%w: %q in mesh pack", ErrMissingBlock, blockMeshes)
	}
	offsets, err := resolveMeshOffsets(data)
	if err != nil {
		return err
	}
	if p.meshes, err = extractMeshes(data, offsets); err != nil {
		return err
	}
	p.log().Debug("meshes extracted", "file", p.name, "meshes", len(p.meshes))
	return nil
}

func (p *Pack) decodeAnimations() error {
	body, err := p.blocks.get(blockBody)
	if err != nil {
		return fmt.Errorf("%w: %q in anim pack", ErrMissingBlock, blockBody)
	}
	if p.bodyLookup, err = resolveBody(body); err != nil {
		return err
	}
	if p.animations, err = extractAnimations(p.blocks, body, p.bodyLookup); err != nil {
		return err
	}
	p.log().Debug("animations extracted", "file", p.name, "animations", len(p.animations))
	return nil
}

func (p *Pack) decodeSounds() error {
	table, err := p.blocks.get(blockAudioTable)
	if err != nil {
		return fmt.Errorf("%w: %q in sound pack", ErrMissingBlock, blockAudioTable)
	}
	if p.audioUnknown, p.sampleHeaders, err = resolveAudioTable(table); err != nil {
		return err
	}
	wave, err := p.blocks.get(blockWaveData)
	if err != nil {
		return fmt.Errorf("%w: %q in sound pack", ErrMissingBlock, blockWaveData)
	}
	if p.sounds, err = extractSounds(wave, p.sampleHeaders); err != nil {
		return err
	}
	p.log().Debug("sounds extracted", "file", p.name, "sounds", len(p.sounds))
	return nil
}

// Name returns the path the Pack was opened from or written to, or
// "buffer" for in-memory opens.
func (p *Pack) Name() string {
	return p.name
}

// HasBlock reports whether a block with the given name is stored.
func (p *Pack) HasBlock(name string) bool {
	return p.blocks.has(name)
}

// Block returns the raw payload of the named block. The returned bytes are
// owned by the Pack and must not be mutated.
func (p *Pack) Block(name string) ([]byte, error) {
	return p.blocks.get(name)
}

// BlockNames returns all block names in insertion order.
func (p *Pack) BlockNames() []string {
	return p.blocks.names()
}

// Meshes returns the decoded mesh byte ranges in offset-table order.
func (p *Pack) Meshes() [][]byte {
	return p.meshes
}

// Textures returns the decoded textures keyed by hex-string block id.
func (p *Pack) Textures() map[string]Texture {
	return p.textures
}

// TextureKeys returns texture keys in INFO lookup order.
func (p *Pack) TextureKeys() []string {
	return p.textureKeys
}

// Animations returns the decoded animation records in lookup order. Each
// record is the fixed-size header from the Body block followed by the
// matching Julien block payload.
func (p *Pack) Animations() [][]byte {
	return p.animations
}

// Sounds returns the decoded sample waveforms in table order.
func (p *Pack) Sounds() [][]byte {
	return p.sounds
}

// SampleHeaders returns the decoded audio sample headers in table order.
func (p *Pack) SampleHeaders() []AudioSampleHeader {
	return p.sampleHeaders
}

// InfoLookup returns the INFO block's texture lookup table.
func (p *Pack) InfoLookup() []InfoLookupEntry {
	return p.infoLookup
}

// BodyLookup returns the Body block's animation lookup table.
func (p *Pack) BodyLookup() []BodyLookupEntry {
	return p.bodyLookup
}
