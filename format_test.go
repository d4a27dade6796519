package srcz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign4(t *testing.T) {
	for _, tt := range []struct {
		in, out int
	}{
		{0, 0},
		{1, 4},
		{2, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{HeaderSize + 1, 12},
	} {
		require.Equal(t, tt.out, align4(tt.in), "align4(%d)", tt.in)
	}
}

func TestNumChunks(t *testing.T) {
	for _, tt := range []struct {
		inputLen, chunks int
	}{
		{1, 1},
		{ChunkSize - 1, 1},
		{ChunkSize, 1},
		{ChunkSize + 1, 2},
		{2 * ChunkSize, 2},
		{3 * ChunkSize, 3},
		{3*ChunkSize + 17, 4},
	} {
		require.Equal(t, tt.chunks, NumChunks(tt.inputLen), "NumChunks(%d)", tt.inputLen)
	}
}

func TestChunkLen(t *testing.T) {
	for _, tt := range []struct {
		inputLen, chunk, size int
	}{
		{1, 0, 1},
		{ChunkSize, 0, ChunkSize},
		{ChunkSize + 1, 0, ChunkSize},
		{ChunkSize + 1, 1, 1},
		{2 * ChunkSize, 1, ChunkSize},
		{2*ChunkSize + 100, 2, 100},
	} {
		require.Equal(t, tt.size, ChunkLen(tt.inputLen, tt.chunk), "ChunkLen(%d, %d)", tt.inputLen, tt.chunk)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := header{
		CompressedBytes: 12345,
		Algorithm:       Zstd,
		Level:           7,
	}
	buf := make([]byte, HeaderSize+12345)
	h.put(buf)

	got, err := parseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, HeaderSize+12345, got.payloadEnd())
	require.Equal(t, align4(HeaderSize+12345), got.tableStart())
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := parseHeader(nil)
	require.Error(t, err)

	_, err = parseHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)

	// Payload length pointing past the container.
	buf := make([]byte, HeaderSize)
	bin.PutUint32(buf, 1)
	_, err = parseHeader(buf)
	require.Error(t, err)
}
