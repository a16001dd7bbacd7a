package booking

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSlipBytes is the default ceiling for payment-slip uploads.  The
// original client enforced 5MB on one path and 10MB on another; the
// stricter limit wins and can be raised through UPLOAD_MAX_BYTES.
const MaxSlipBytes = 5 << 20

// allowedSlipTypes are the MIME types accepted for payment evidence.
// Slips are photos or screenshots of a transfer, so only image types
// are accepted.
var allowedSlipTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// SlipUpload describes an uploaded payment slip before it is stored.
// Content is read exactly once when the object store persists it.
type SlipUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ValidateSlip checks an upload in a fixed order, first failure wins:
// file present, MIME type allowed, size within maxBytes.  A
// non-positive maxBytes falls back to MaxSlipBytes.  Returns nil when
// the upload is acceptable.
func ValidateSlip(u *SlipUpload, maxBytes int64) *Error {
	if maxBytes <= 0 {
		maxBytes = MaxSlipBytes
	}
	if u == nil || u.Content == nil || u.Filename == "" {
		return Validationf("payment slip file is required")
	}
	if !allowedSlipTypes[strings.ToLower(u.ContentType)] {
		return Validationf("unsupported slip file type %q; allowed: JPG, PNG, GIF", u.ContentType)
	}
	if u.Size > maxBytes {
		return Validationf("slip file exceeds the %dMB limit", maxBytes>>20)
	}
	return nil
}

// SlipObjectName derives the object-store name for a slip:
// slip_<bookingID>_<unix-millis>.<ext>.  The timestamp keeps
// resubmissions from colliding; if the original filename carries no
// extension a random suffix is used instead so repeated extensionless
// uploads in the same millisecond still stay distinct.
func SlipObjectName(bookingID uint64, filename string, now time.Time) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = uuid.NewString()[:8]
	}
	return fmt.Sprintf("slip_%d_%d.%s", bookingID, now.UnixMilli(), ext)
}
