package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slipUpload(name, mime string, size int64) *SlipUpload {
	return &SlipUpload{
		Filename:    name,
		ContentType: mime,
		Size:        size,
		Content:     strings.NewReader("fake-bytes"),
	}
}

func TestValidateSlip(t *testing.T) {
	assert.Nil(t, ValidateSlip(slipUpload("slip.jpg", "image/jpeg", 1024), 0))
	assert.Nil(t, ValidateSlip(slipUpload("slip.png", "image/png", MaxSlipBytes), 0))

	// Missing file wins over any other failure.
	err := ValidateSlip(nil, 0)
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)

	err = ValidateSlip(&SlipUpload{Filename: "slip.jpg"}, 0)
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)

	// Wrong type is rejected even when the size would also fail, so the
	// message names the type problem first.
	err = ValidateSlip(slipUpload("slip.pdf", "application/pdf", MaxSlipBytes*2), 0)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "file type")

	// Oversized file.
	err = ValidateSlip(slipUpload("slip.jpg", "image/jpeg", MaxSlipBytes+1), 0)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "5MB")

	// Custom ceiling is honored.
	assert.Nil(t, ValidateSlip(slipUpload("slip.jpg", "image/jpeg", 2<<20), 4<<20))
	assert.NotNil(t, ValidateSlip(slipUpload("slip.jpg", "image/jpeg", 5<<20), 4<<20))
}

func TestSlipObjectName(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	name := SlipObjectName(42, "evidence.PNG", at)
	assert.Equal(t, "slip_42_1700000000000.PNG", name)

	// Extensionless uploads still produce distinct, suffixed names.
	name = SlipObjectName(42, "evidence", at)
	assert.True(t, strings.HasPrefix(name, "slip_42_1700000000000."))
	assert.NotEqual(t, "slip_42_1700000000000.", name)
}
