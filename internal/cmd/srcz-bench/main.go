// Command srcz-bench compresses a file (or a synthetic source corpus) with
// both algorithms and reports sizes, ratios and chunk decode timings.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-faster/srcz"
)

// synthetic produces n bytes that look like program text: repetitive
// keywords with pseudorandom identifiers, deterministic across runs.
func synthetic(n int) []byte {
	r := rand.New(rand.NewSource(10))
	var buf bytes.Buffer
	for buf.Len() < n {
		fmt.Fprintf(&buf, "function f%d(x) { return x + %d; }\n", r.Intn(10000), r.Intn(100))
	}
	return buf.Bytes()[:n]
}

func run(ctx context.Context, lg *zap.Logger) (re error) {
	var arg struct {
		File  string
		Size  int
		Level int
	}
	flag.StringVar(&arg.File, "file", "", "input file (synthetic corpus if empty)")
	flag.IntVar(&arg.Size, "size", 4<<20, "synthetic corpus size")
	flag.IntVar(&arg.Level, "level", 0, "compression level, 0 for default")
	flag.Parse()

	var data []byte
	if arg.File != "" {
		f, err := os.Open(arg.File)
		if err != nil {
			return errors.Wrap(err, "open")
		}
		defer func() {
			if err := f.Close(); err != nil {
				re = multierr.Append(re, err)
			}
		}()
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(f); err != nil {
			return errors.Wrap(err, "read")
		}
		data = buf.Bytes()
	} else {
		data = synthetic(arg.Size)
	}
	lg.Info("Input",
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("chunks", srcz.NumChunks(len(data))),
	)

	for _, algorithm := range srcz.AlgorithmValues() {
		start := time.Now()
		container, err := srcz.Compress(data, algorithm, srcz.Level(arg.Level))
		if err != nil {
			return errors.Wrap(err, "compress")
		}
		compressDuration := time.Since(start)

		start = time.Now()
		decoded, err := srcz.Decompress(container, len(data))
		if err != nil {
			return errors.Wrap(err, "decompress")
		}
		decompressDuration := time.Since(start)
		if !bytes.Equal(decoded, data) {
			return errors.New("round trip mismatch")
		}

		// Random access: decode the middle chunk only.
		chunk := srcz.NumChunks(len(data)) / 2
		start = time.Now()
		if _, err := srcz.DecompressChunk(container, chunk, srcz.ChunkLen(len(data), chunk)); err != nil {
			return errors.Wrap(err, "decompress chunk")
		}
		chunkDuration := time.Since(start)

		sum := srcz.Checksum(container)
		lg.Info("Done",
			zap.Stringer("algorithm", algorithm),
			zap.String("compressed", humanize.Bytes(uint64(len(container)))),
			zap.Float64("ratio", float64(len(data))/float64(len(container))),
			zap.Duration("compress", compressDuration),
			zap.Duration("decompress", decompressDuration),
			zap.Duration("chunk", chunkDuration),
			zap.Uint64("checksum.low", sum.Low),
		)
	}
	return nil
}

func main() {
	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if err := run(context.Background(), lg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
}
