package hdthermal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ErrNotExist is returned (wrapped) by MaybeOpenFromGoogleStorage when the
// local file or the Google Storage object does not exist.
var ErrNotExist = errors.New("file does not exist")

// IsGoogleStoragePath reports whether path points into a Google Storage
// bucket.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits gs://bucket/some/object into its bucket and
// object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens path for random access. Paths beginning
// with gs:// are read through client (which must then be non-nil); anything
// else is opened from the local filesystem. The size of the file is returned
// alongside the reader.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, 0, fmt.Errorf("%s: a Google Storage client is required for gs:// paths", path)
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, 0, err
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		wrappedHandle := &GSReaderAtCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call to get the filesize
		attrs, err := wrappedHandle.ObjectHandle.Attrs(wrappedHandle.Context)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, 0, fmt.Errorf("%s: %w", path, ErrNotExist)
		} else if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return wrappedHandle, attrs.Size, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrNotExist)
	} else if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}
