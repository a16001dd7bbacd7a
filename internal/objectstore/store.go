// Package objectstore abstracts the bucket-style storage used for
// payment slips.  The production deployment points the filesystem
// store at a mounted volume; the interface keeps the seam open for an
// S3-compatible backend without touching the slip flow.
package objectstore

import (
	"context"
	"io"
)

// Store is the minimal bucket contract the slip handler needs:
// upload an object, resolve a serving URL, delete an object.
type Store interface {
	// Put writes the object under name and returns the stored path.
	// An object that already exists under the same name is an error;
	// slip names embed a timestamp precisely to avoid overwrites.
	Put(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	// PublicURL returns the path a client can fetch the object from.
	PublicURL(name string) string
	// Delete removes the object.  Deleting a missing object is not an
	// error; the caller only cares that it is gone.
	Delete(ctx context.Context, name string) error
}
