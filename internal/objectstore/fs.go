package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps objects as plain files under a base directory, one
// subdirectory per bucket.  Object names are flattened to their base
// name so a crafted name cannot escape the bucket directory.
type FSStore struct {
	base    string
	bucket  string
	baseURL string
}

// NewFSStore creates (if needed) base/bucket and returns a store over
// it.  baseURL is prepended by PublicURL; it may be empty when objects
// are served by the API itself.
func NewFSStore(base, bucket, baseURL string) (*FSStore, error) {
	dir := filepath.Join(base, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket dir: %w", err)
	}
	return &FSStore{base: base, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.base, s.bucket, filepath.Base(name))
}

// Put streams r into a new file under the bucket.  It refuses to
// overwrite an existing object and cleans up the partial file when the
// copy or the size check fails.
func (s *FSStore) Put(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := s.path(name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create object %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err == nil && size > 0 && n != size {
		err = fmt.Errorf("object %s: wrote %d bytes, expected %d", name, n, size)
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return s.bucket + "/" + filepath.Base(name), nil
}

// PublicURL joins the configured base URL with the object path.
func (s *FSStore) PublicURL(name string) string {
	return s.baseURL + "/" + s.bucket + "/" + filepath.Base(name)
}

// Delete removes the object file; a missing file is treated as done.
func (s *FSStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
