package lionpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBlocks(t *testing.T) {
	t.Parallel()

	t.Run("parses blocks in file order", func(t *testing.T) {
		t.Parallel()

		data := buildPack(t,
			rawBlock{name: "first", data: []byte("hello")},
			rawBlock{name: "second", data: []byte{}},
			rawBlock{name: "third", data: bytes.Repeat([]byte{0xab}, 100)},
		)

		store := newBlockStore()
		require.NoError(t, readBlocks(data, store))

		assert.Equal(t, []string{"first", "second", "third"}, store.names())

		payload, err := store.get("first")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), payload)

		payload, err = store.get("second")
		require.NoError(t, err)
		assert.Empty(t, payload)
	})

	t.Run("rejects bad magic", func(t *testing.T) {
		t.Parallel()

		data := buildPack(t, rawBlock{name: "block", data: []byte("x")})
		copy(data, "NotAPack")

		err := readBlocks(data, newBlockStore())
		require.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("rejects file too small for one block", func(t *testing.T) {
		t.Parallel()

		err := readBlocks([]byte(packMagic), newBlockStore())
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})

	t.Run("rejects duplicate block names", func(t *testing.T) {
		t.Parallel()

		data := buildPack(t,
			rawBlock{name: "dup", data: []byte("a")},
			rawBlock{name: "dup", data: []byte("b")},
		)

		err := readBlocks(data, newBlockStore())
		require.ErrorIs(t, err, ErrDuplicateBlock)
	})

	t.Run("rejects payload past end of file", func(t *testing.T) {
		t.Parallel()

		data := buildPack(t, rawBlock{name: "short", data: []byte("0123456789")})
		// Bump the declared size beyond the actual payload.
		data[len(packMagic)+blockNameSize] = 100

		err := readBlocks(data, newBlockStore())
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})

	t.Run("rejects trailing bytes smaller than a header", func(t *testing.T) {
		t.Parallel()

		for _, extra := range []int{1, 17, blockHeaderSize - 1} {
			data := buildPack(t, rawBlock{name: "block", data: []byte("payload")})
			data = append(data, make([]byte, extra)...)

			err := readBlocks(data, newBlockStore())
			require.ErrorIs(t, err, ErrMisalignedTrailer, "%d trailing bytes", extra)
		}
	})

	t.Run("accepts last block ending exactly at EOF", func(t *testing.T) {
		t.Parallel()

		data := buildPack(t, rawBlock{name: "block", data: []byte("payload")})

		store := newBlockStore()
		require.NoError(t, readBlocks(data, store))
		assert.Equal(t, 1, store.len())
	})
}

func TestWriteBlocks(t *testing.T) {
	t.Parallel()

	t.Run("round-trips byte identical", func(t *testing.T) {
		t.Parallel()

		original := buildPack(t,
			rawBlock{name: "MESHES", data: []byte("mesh bytes")},
			rawBlock{name: "INFO", data: []byte{1, 2, 3, 4}},
			rawBlock{name: "2a", data: bytes.Repeat([]byte{7}, 50)},
		)

		store := newBlockStore()
		require.NoError(t, readBlocks(original, store))

		var buf bytes.Buffer
		require.NoError(t, writeBlocks(&buf, store))
		assert.Equal(t, original, buf.Bytes())
	})

	t.Run("file size is magic plus framed blocks", func(t *testing.T) {
		t.Parallel()

		blocks := []rawBlock{
			{name: "a", data: make([]byte, 13)},
			{name: "b", data: make([]byte, 0)},
			{name: "c", data: make([]byte, 4096)},
		}
		data := buildPack(t, blocks...)

		want := len(packMagic)
		for _, b := range blocks {
			want += blockHeaderSize + len(b.data)
		}
		assert.Equal(t, want, len(data))

		store := newBlockStore()
		require.NoError(t, readBlocks(data, store))
		var buf bytes.Buffer
		require.NoError(t, writeBlocks(&buf, store))
		assert.Equal(t, want, buf.Len())
	})
}

func TestCstring(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", cstring([]byte{'a', 'b', 'c', 0, 'x'}))
	assert.Equal(t, "abc", cstring([]byte("abc")))
	assert.Equal(t, "", cstring([]byte{0, 'a'}))
	assert.Equal(t, "", cstring(nil))
}
