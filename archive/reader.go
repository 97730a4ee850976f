// Package archive reads and writes the numpy .npz archives that hold both the
// thermal dataset (one archive per subject) and the pattern matrices computed
// from it.
package archive

import (
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/hdthermal"
	"github.com/carbocation/pfx"
	"github.com/sbinet/npyio"
	"github.com/sbinet/npyio/npz"
)

// Reader gives typed access to the named arrays of one .npz archive.
type Reader struct {
	Path string

	f  hdthermal.ReaderAtCloser
	zr *npz.Reader
}

// Open opens a local or gs:// .npz archive. A missing file yields an error
// wrapping hdthermal.ErrNotExist.
func Open(path string, client *storage.Client) (*Reader, error) {
	f, size, err := hdthermal.MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}

	zr, err := npz.NewReader(f, size)
	if err != nil {
		f.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &Reader{Path: path, f: f, zr: zr}, nil
}

func (r *Reader) Close() error {
	err := r.zr.Close()
	if cerr := r.f.Close(); cerr != nil {
		err = cerr
	}

	return err
}

// Keys lists the array names in the archive, without the .npy suffix.
func (r *Reader) Keys() []string {
	out := make([]string, 0, len(r.zr.Keys()))
	for _, k := range r.zr.Keys() {
		out = append(out, strings.TrimSuffix(k, ".npy"))
	}
	sort.Strings(out)

	return out
}

// Has reports whether the archive contains an array called name.
func (r *Reader) Has(name string) bool {
	_, ok := r.key(name)
	return ok
}

// numpy writes "name.npy" members; be lenient about which form the
// underlying zip listing uses.
func (r *Reader) key(name string) (string, bool) {
	for _, k := range r.zr.Keys() {
		if k == name || k == name+".npy" {
			return k, true
		}
	}

	return "", false
}

// Float64 returns the named array, converted to float64, along with its shape.
// Data is returned in C (row-major) order regardless of how it was stored.
func (r *Reader) Float64(name string) ([]float64, []int, error) {
	raw, shape, err := r.read(name)
	if err != nil {
		return nil, nil, err
	}

	out, err := convert[float64](raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s[%s]: %w", r.Path, name, err)
	}

	return out, shape, nil
}

// Int32 returns the named array, converted to int32, along with its shape.
func (r *Reader) Int32(name string) ([]int32, []int, error) {
	raw, shape, err := r.read(name)
	if err != nil {
		return nil, nil, err
	}

	out, err := convert[int32](raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s[%s]: %w", r.Path, name, err)
	}

	return out, shape, nil
}

// Int64 returns the named array, converted to int64, along with its shape.
func (r *Reader) Int64(name string) ([]int64, []int, error) {
	raw, shape, err := r.read(name)
	if err != nil {
		return nil, nil, err
	}

	out, err := convert[int64](raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s[%s]: %w", r.Path, name, err)
	}

	return out, shape, nil
}

func (r *Reader) read(name string) (any, []int, error) {
	key, ok := r.key(name)
	if !ok {
		return nil, nil, fmt.Errorf("%s: no array named %q (have %v)", r.Path, name, r.Keys())
	}

	rc, err := r.zr.Open(key)
	if err != nil {
		return nil, nil, pfx.Err(fmt.Errorf("%s[%s]: %w", r.Path, name, err))
	}
	defer rc.Close()

	nr, err := npyio.NewReader(rc)
	if err != nil {
		return nil, nil, pfx.Err(fmt.Errorf("%s[%s]: %w", r.Path, name, err))
	}

	shape := append([]int(nil), nr.Header.Descr.Shape...)

	raw, err := readTyped(nr, nr.Header.Descr.Type)
	if err != nil {
		return nil, nil, fmt.Errorf("%s[%s]: %w", r.Path, name, err)
	}

	if n := elements(shape); lenOf(raw) != n {
		return nil, nil, fmt.Errorf("%s[%s]: header shape %v implies %d values but %d were read", r.Path, name, shape, n, lenOf(raw))
	}

	if nr.Header.Descr.Fortran && len(shape) > 1 {
		raw = fortranToC(raw, shape)
	}

	return raw, shape, nil
}

// readTyped reads the payload into a slice whose element type matches the
// on-disk dtype exactly, so no conversion is left to the decoder.
func readTyped(nr *npyio.Reader, descr string) (any, error) {
	switch dtype := strings.TrimLeft(descr, "<>|="); dtype {
	case "f8":
		return readInto[float64](nr)
	case "f4":
		return readInto[float32](nr)
	case "i8":
		return readInto[int64](nr)
	case "i4":
		return readInto[int32](nr)
	case "i2":
		return readInto[int16](nr)
	case "i1":
		return readInto[int8](nr)
	case "u8":
		return readInto[uint64](nr)
	case "u4":
		return readInto[uint32](nr)
	case "u2":
		return readInto[uint16](nr)
	case "u1":
		return readInto[uint8](nr)
	case "b1":
		return readInto[bool](nr)
	default:
		return nil, fmt.Errorf("unsupported dtype %q", descr)
	}
}

func readInto[T any](nr *npyio.Reader) (any, error) {
	var v []T
	if err := nr.Read(&v); err != nil {
		return nil, err
	}

	return v, nil
}
