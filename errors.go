package lionpack

import "errors"

// Sentinel errors. Every parse violation aborts the current load or save
// pass; there is no partial-result path. Errors are wrapped with the file
// path and the offending block or entry, so callers match with errors.Is.
var (
	// ErrBadMagic is returned when the 8-byte container magic is wrong.
	ErrBadMagic = errors.New("lionpack: unrecognized pack header")

	// ErrBadSubMagic is returned when a MESHES or Body block lacks the
	// "MKJC" sub-format magic.
	ErrBadSubMagic = errors.New("lionpack: unrecognized block sub-header")

	// ErrDuplicateBlock is returned when a block name occurs twice.
	ErrDuplicateBlock = errors.New("lionpack: duplicate block name")

	// ErrBlockNotFound is returned when a requested block is absent.
	ErrBlockNotFound = errors.New("lionpack: block not found")

	// ErrMissingBlock is returned when a block required by the pack kind
	// being decoded is absent.
	ErrMissingBlock = errors.New("lionpack: required block missing")

	// ErrTruncatedBlock is returned when fewer bytes remain than a size
	// field or fixed layout demands.
	ErrTruncatedBlock = errors.New("lionpack: truncated block")

	// ErrMisalignedTrailer is returned when bytes remain after the last
	// block but too few to hold another block header.
	ErrMisalignedTrailer = errors.New("lionpack: file not evenly split into blocks")

	// ErrEmptyAudioTable is returned when an LHAudioBankSampleTable block
	// declares zero samples.
	ErrEmptyAudioTable = errors.New("lionpack: audio table has no sample entries")

	// ErrSizeMismatch is returned when an audio table's byte length does
	// not match its declared sample count.
	ErrSizeMismatch = errors.New("lionpack: audio table size mismatch")

	// ErrIDMismatch is returned when a texture block's embedded id differs
	// from the INFO lookup entry that referenced it.
	ErrIDMismatch = errors.New("lionpack: texture block id mismatch")

	// ErrDuplicateTexture is returned when two INFO entries resolve to the
	// same texture block.
	ErrDuplicateTexture = errors.New("lionpack: duplicate texture extracted")

	// ErrInvalidDDSHeader is returned when a DDS header fails validation.
	ErrInvalidDDSHeader = errors.New("lionpack: invalid DDS header")

	// ErrInvalidMeshOffsets is returned when a MESHES offset table is
	// decreasing or points outside the block.
	ErrInvalidMeshOffsets = errors.New("lionpack: invalid mesh offsets")

	// ErrInvalidSampleRange is returned when a sample header addresses
	// bytes beyond the LHAudioWaveData block.
	ErrInvalidSampleRange = errors.New("lionpack: sample range outside wave data")

	// ErrAlreadyFinalized is returned when a Pack that completed, or failed,
	// a load or write pass is opened, mutated, or written again.
	ErrAlreadyFinalized = errors.New("lionpack: pack already finalized")

	// ErrBlockTooLarge is returned on the authoring path when a payload
	// exceeds the configured cap or the format's u32 size field.
	ErrBlockTooLarge = errors.New("lionpack: block payload too large")

	// ErrInvalidBlockName is returned on the authoring path when a block
	// name is empty or does not fit the 32-byte NUL-terminated field.
	ErrInvalidBlockName = errors.New("lionpack: invalid block name")
)
