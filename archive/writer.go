package archive

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/flate"
)

var npyMagic = []byte("\x93NUMPY")

// Writer produces an archive equivalent to numpy.savez_compressed: a zip of
// deflated .npy members.
type Writer struct {
	zw     *zip.Writer
	closer io.Closer
	names  map[string]struct{}
}

// Create truncates or creates the archive at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	w := NewWriter(f)
	w.closer = f

	return w, nil
}

// NewWriter writes an archive to w. Closing the Writer does not close w.
func NewWriter(w io.Writer) *Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	return &Writer{zw: zw, names: make(map[string]struct{})}
}

// Write adds one array. data must be a []float64, []float32, []int64,
// []int32, []uint8 or []bool in row-major order holding exactly as many
// values as shape implies.
func (w *Writer) Write(name string, shape []int, data any) error {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid array name %q", name)
	}
	if _, dup := w.names[name]; dup {
		return fmt.Errorf("array %q already written", name)
	}

	descr, err := dtypeOf(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if n := elements(shape); lenOf(data) != n {
		return fmt.Errorf("%s: shape %v implies %d values but %d were given", name, shape, n, lenOf(data))
	}

	member, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   name + ".npy",
		Method: zip.Deflate,
	})
	if err != nil {
		return pfx.Err(err)
	}

	if _, err := member.Write(npyHeader(descr, shape)); err != nil {
		return pfx.Err(err)
	}

	if err := binary.Write(member, binary.LittleEndian, data); err != nil {
		return pfx.Err(err)
	}

	w.names[name] = struct{}{}

	return nil
}

func (w *Writer) Close() error {
	err := w.zw.Close()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}

	return err
}

func dtypeOf(data any) (string, error) {
	switch data.(type) {
	case []float64:
		return "<f8", nil
	case []float32:
		return "<f4", nil
	case []int64:
		return "<i8", nil
	case []int32:
		return "<i4", nil
	case []uint8:
		return "|u1", nil
	case []bool:
		return "|b1", nil
	}

	return "", fmt.Errorf("unsupported data type %T", data)
}

// npyHeader builds a version 1.0 .npy header, padded with spaces so that the
// payload starts on a 64 byte boundary as numpy does.
func npyHeader(descr string, shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := "(" + strings.Join(dims, ", ") + ")"
	if len(shape) == 1 {
		tuple = "(" + dims[0] + ",)"
	}

	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, tuple)

	// magic(6) + version(2) + header length(2) + dict + trailing newline
	unpadded := len(npyMagic) + 2 + 2 + len(dict) + 1
	pad := (64 - unpadded%64) % 64

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(dict)+pad+1))
	buf.WriteString(dict)
	buf.WriteString(strings.Repeat(" ", pad))
	buf.WriteByte('\n')

	return buf.Bytes()
}
