package hdthermal

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
)

// Decorates a Google Storage object handle with Read and ReadAt
type GSReaderAtCloser struct {
	*storage.ObjectHandle
	Context context.Context
	Closer  *func() error
	Reader  *storage.Reader
}

func (o *GSReaderAtCloser) Read(p []byte) (n int, err error) {
	if o.Reader == nil {
		o.Reader, err = o.NewReader(o.Context)
		if err != nil {
			return 0, err
		}
	}

	return o.Reader.Read(p)
}

// ReadAt satisfies io.ReaderAt. The zip reader behind .npz archives expects
// ReadAt to fill p completely unless the object ends first, so the ranged read
// is drained with io.ReadFull.
func (o *GSReaderAtCloser) ReadAt(p []byte, offset int64) (n int, err error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	n, err = io.ReadFull(rdr, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	return n, err
}

// Satisfies io.Closer. If o.Closer is not set, only the streaming reader (if
// any) is closed.
func (o *GSReaderAtCloser) Close() error {
	var err error

	if o.Reader != nil {
		err = o.Reader.Close()
		o.Reader = nil
	}

	if o.Closer != nil {
		if cerr := (*o.Closer)(); cerr != nil {
			err = cerr
		}
	}

	return err
}
