package vose

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/vosealias/vose/codec"
)

const (
	// snapshotMagic identifies vose snapshot files (ASCII: "VOSE").
	snapshotMagic = 0x564F5345
	// snapshotVersion is the current snapshot format version.
	snapshotVersion = 1
)

var (
	ErrInvalidMagic    = errors.New("invalid magic number")
	ErrInvalidVersion  = errors.New("unsupported snapshot version")
	ErrUnknownCodec    = errors.New("unknown snapshot codec")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// CompressionType defines the compression algorithm applied to the snapshot
// payload.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 applies LZ4 compression (fast, moderate ratio).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD applies zstd compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// SnapshotOptions configures snapshot writes.
type SnapshotOptions struct {
	// Compression selects the payload compression. Default: CompressionNone.
	Compression CompressionType
}

// snapshotHeader is the fixed-size prefix of every snapshot. The codec name
// and the payload follow it, each length-prefixed.
type snapshotHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	N           uint32
}

type snapshotData[T any] struct {
	Elements []T       `json:"elements"`
	Bias     []float64 `json:"bias"`
	Alias    []int     `json:"alias"`
}

// SaveToWriter writes the structure to w in the self-describing snapshot
// format: a fixed header, the codec name and the codec-encoded (optionally
// compressed) tables.
//
// The element type must round-trip through the configured codec (for the
// default JSON codec: typical structs, maps, slices and scalars).
func (va *VoseAlias[T]) SaveToWriter(w io.Writer, optFns ...func(*SnapshotOptions)) error {
	opts := SnapshotOptions{Compression: CompressionNone}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	start := time.Now()
	n, err := va.writeSnapshot(w, opts)
	va.metrics.RecordSnapshotSave(n, time.Since(start), err)
	va.logger.LogSnapshotSave(va.Len(), n, err)

	return err
}

func (va *VoseAlias[T]) writeSnapshot(w io.Writer, opts SnapshotOptions) (int, error) {
	payload, err := va.codec.Marshal(snapshotData[T]{
		Elements: va.elements,
		Bias:     va.bias,
		Alias:    va.alias,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal snapshot: %w", err)
	}

	payload, err = compressPayload(payload, opts.Compression)
	if err != nil {
		return 0, err
	}

	header := snapshotHeader{
		Magic:       snapshotMagic,
		Version:     snapshotVersion,
		Compression: uint8(opts.Compression),
		N:           uint32(va.Len()),
	}

	cw := &countingWriter{w: w}
	if err := binary.Write(cw, binary.LittleEndian, header); err != nil {
		return cw.n, err
	}

	name := []byte(va.codec.Name())
	if err := binary.Write(cw, binary.LittleEndian, uint16(len(name))); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(name); err != nil {
		return cw.n, err
	}

	if err := binary.Write(cw, binary.LittleEndian, uint64(len(payload))); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(payload); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// LoadFromReader reads a snapshot written by SaveToWriter and reconstructs
// the alias structure without re-running table construction.
//
// The loaded tables are revalidated (lengths, index ranges, bias bounds), so
// a corrupt or truncated snapshot is reported as an error rather than
// producing a structure that can misbehave at sampling time.
func LoadFromReader[T any](r io.Reader, optFns ...Option) (*VoseAlias[T], error) {
	o := applyOptions(optFns)

	start := time.Now()
	va, err := readSnapshot[T](r, o)
	o.metrics.RecordSnapshotLoad(time.Since(start), err)
	if va != nil {
		o.logger.LogSnapshotLoad(va.Len(), err)
	} else {
		o.logger.LogSnapshotLoad(0, err)
	}

	return va, err
}

func readSnapshot[T any](r io.Reader, o options) (*VoseAlias[T], error) {
	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, fmt.Errorf("read codec name: %w", err)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("read codec name: %w", err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var payloadLen uint64
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return nil, fmt.Errorf("read payload length: %w", err)
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	payload, err := decompressPayload(payload, CompressionType(header.Compression))
	if err != nil {
		return nil, err
	}

	var data snapshotData[T]
	if err := c.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := validateSnapshot(header, data); err != nil {
		return nil, err
	}

	return &VoseAlias[T]{
		elements: data.Elements,
		bias:     data.Bias,
		alias:    data.Alias,
		source:   o.source,
		logger:   o.logger,
		metrics:  o.metrics,
		codec:    c,
	}, nil
}

func validateSnapshot[T any](header snapshotHeader, data snapshotData[T]) error {
	n := len(data.Elements)
	if n == 0 || n != int(header.N) || len(data.Bias) != n || len(data.Alias) != n {
		return fmt.Errorf("%w: inconsistent table lengths", ErrCorruptSnapshot)
	}
	for i, b := range data.Bias {
		if b < 0 || b > 1 {
			return fmt.Errorf("%w: bias[%d] = %g out of [0, 1]", ErrCorruptSnapshot, i, b)
		}
	}
	for i, a := range data.Alias {
		if a < 0 || a >= n {
			return fmt.Errorf("%w: alias[%d] = %d out of range", ErrCorruptSnapshot, i, a)
		}
	}
	return nil
}

// SaveToFile saves the structure to a file, writing through a temp file in
// the same directory so the final rename is atomic.
func (va *VoseAlias[T]) SaveToFile(filename string, optFns ...func(*SnapshotOptions)) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	buf := bufio.NewWriter(tmp)
	if err := va.SaveToWriter(buf, optFns...); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, filename)
}

// LoadFromFile loads a structure from a file written by SaveToFile.
func LoadFromFile[T any](filename string, optFns ...Option) (*VoseAlias[T], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFromReader[T](bufio.NewReader(f), optFns...)
}

func compressPayload(data []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("%w: unknown compression type %d", ErrCorruptSnapshot, compression)
	}
}

func decompressPayload(data []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression type %d", ErrCorruptSnapshot, compression)
	}
}

type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
