package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorePutAndDelete(t *testing.T) {
	base := t.TempDir()
	store, err := NewFSStore(base, "payment-slips", "https://cdn.example.com")
	require.NoError(t, err)

	ctx := context.Background()
	body := "slip image bytes"

	path, err := store.Put(ctx, "slip_1_1700000000000.jpg", strings.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "payment-slips/slip_1_1700000000000.jpg", path)

	raw, err := os.ReadFile(filepath.Join(base, "payment-slips", "slip_1_1700000000000.jpg"))
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))

	assert.Equal(t, "https://cdn.example.com/payment-slips/slip_1_1700000000000.jpg",
		store.PublicURL("slip_1_1700000000000.jpg"))

	// Same name again must not overwrite.
	_, err = store.Put(ctx, "slip_1_1700000000000.jpg", strings.NewReader(body), int64(len(body)))
	assert.Error(t, err)

	require.NoError(t, store.Delete(ctx, "slip_1_1700000000000.jpg"))
	_, err = os.Stat(filepath.Join(base, "payment-slips", "slip_1_1700000000000.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing object is fine.
	assert.NoError(t, store.Delete(ctx, "slip_1_1700000000000.jpg"))
}

func TestFSStoreSizeMismatchCleansUp(t *testing.T) {
	base := t.TempDir()
	store, err := NewFSStore(base, "payment-slips", "")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "short.jpg", strings.NewReader("abc"), 99)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(base, "payment-slips", "short.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFSStoreFlattensTraversal(t *testing.T) {
	base := t.TempDir()
	store, err := NewFSStore(base, "payment-slips", "")
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "../../evil.jpg", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "payment-slips/evil.jpg", path)
	_, statErr := os.Stat(filepath.Join(base, "payment-slips", "evil.jpg"))
	assert.NoError(t, statErr)
}
