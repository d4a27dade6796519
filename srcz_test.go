package srcz

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randData(n int) []byte {
	s := rand.NewSource(10)
	r := rand.New(s)
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		panic(err)
	}
	return buf
}

// textData produces n bytes of repetitive program-like text.
func textData(n int) []byte {
	pattern := []byte("function f(x) { return x * 2; } // source text\n")
	buf := bytes.Repeat(pattern, n/len(pattern)+1)
	return buf[:n]
}

func levelsFor(algorithm Algorithm) []Level {
	switch algorithm {
	case Deflate:
		return []Level{0, 1, 9}
	case Zstd:
		return []Level{0, 1, 3, 19}
	}
	return nil
}

func TestRoundTrip(t *testing.T) {
	sizes := []int{1, 5, ChunkSize - 1, ChunkSize, ChunkSize + 1, 3 * ChunkSize, 3*ChunkSize + 12345}
	for _, algorithm := range AlgorithmValues() {
		algorithm := algorithm
		t.Run(algorithm.String(), func(t *testing.T) {
			for _, level := range levelsFor(algorithm) {
				for _, size := range sizes {
					for _, data := range [][]byte{textData(size), randData(size)} {
						container, err := Compress(data, algorithm, level)
						require.NoError(t, err)

						decoded, err := Decompress(container, size)
						require.NoError(t, err, "size %d level %d", size, level)
						require.True(t, bytes.Equal(data, decoded), "size %d level %d", size, level)

						for i := 0; i < NumChunks(size); i++ {
							chunk, err := DecompressChunk(container, i, ChunkLen(size, i))
							require.NoError(t, err, "chunk %d", i)
							lo := i * ChunkSize
							require.True(t, bytes.Equal(data[lo:lo+ChunkLen(size, i)], chunk), "chunk %d", i)
						}
					}
				}
			}
		})
	}
}

func TestRoundTripOneChunkZstd(t *testing.T) {
	data := make([]byte, ChunkSize)
	container, err := Compress(data, Zstd, 0)
	require.NoError(t, err)

	chunks, err := Chunks(container)
	require.NoError(t, err)
	require.Equal(t, 1, chunks)
	require.Less(t, len(container), ChunkSize/8)

	chunk, err := DecompressChunk(container, 0, ChunkSize)
	require.NoError(t, err)
	require.Equal(t, data, chunk)
}

func TestRoundTripMultiChunkZstd(t *testing.T) {
	data := randData(192 * 1024)
	container, err := Compress(data, Zstd, 3)
	require.NoError(t, err)

	chunks, err := Chunks(container)
	require.NoError(t, err)
	require.Equal(t, 3, chunks)

	for i := 0; i < 3; i++ {
		chunk, err := DecompressChunk(container, i, ChunkSize)
		require.NoError(t, err)
		require.Equal(t, data[i*ChunkSize:(i+1)*ChunkSize], chunk)
	}
}

func TestCompressDeterministic(t *testing.T) {
	data := textData(3 * ChunkSize)
	for _, algorithm := range AlgorithmValues() {
		first, err := Compress(data, algorithm, 0)
		require.NoError(t, err)
		second, err := Compress(data, algorithm, 0)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestBackendIndependence(t *testing.T) {
	data := textData(2*ChunkSize + 999)

	deflated, err := Compress(data, Deflate, 0)
	require.NoError(t, err)
	zstded, err := Compress(data, Zstd, 0)
	require.NoError(t, err)

	require.Equal(t, byte(Deflate), deflated[hAlgorithm])
	require.Equal(t, byte(Zstd), zstded[hAlgorithm])
	require.Equal(t, deflated[hLevel], zstded[hLevel])
	require.Equal(t, deflated[hReserved:HeaderSize], zstded[hReserved:HeaderSize])

	for _, container := range [][]byte{deflated, zstded} {
		decoded, err := Decompress(container, len(data))
		require.NoError(t, err)
		require.True(t, bytes.Equal(data, decoded))
	}
}

func FuzzDecompress(f *testing.F) {
	for _, algorithm := range AlgorithmValues() {
		container, err := Compress(textData(1024), algorithm, 0)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(container)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if _, err := Decompress(data, 1024); err != nil {
			t.Skip(err)
		}
	})
}

func FuzzDecompressChunk(f *testing.F) {
	for _, algorithm := range AlgorithmValues() {
		container, err := Compress(textData(ChunkSize+100), algorithm, 0)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(container, 0, ChunkSize)
		f.Add(container, 1, 100)
	}

	f.Fuzz(func(t *testing.T, data []byte, chunk, outLen int) {
		if outLen < 0 || outLen > ChunkSize {
			t.Skip()
		}
		if _, err := DecompressChunk(data, chunk, outLen); err != nil {
			t.Skip(err)
		}
	})
}

func BenchmarkCompress(b *testing.B) {
	data := textData(1 << 20)
	for _, algorithm := range AlgorithmValues() {
		algorithm := algorithm
		b.Run(algorithm.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := Compress(data, algorithm, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecompressChunk(b *testing.B) {
	data := textData(1 << 20)
	for _, algorithm := range AlgorithmValues() {
		algorithm := algorithm
		b.Run(algorithm.String(), func(b *testing.B) {
			container, err := Compress(data, algorithm, 0)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.SetBytes(ChunkSize)
			for i := 0; i < b.N; i++ {
				if _, err := DecompressChunk(container, 7, ChunkSize); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
