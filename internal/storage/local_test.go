package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lamsashop/lamsa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "proofs/order-1/receipt.jpg", strings.NewReader("proof-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/proofs/order-1/receipt.jpg", url)

	rc, err := s.Get(ctx, "proofs/order-1/receipt.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "proof-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "proofs/order-1/receipt.jpg"))
	_, err = s.Get(ctx, "proofs/order-1/receipt.jpg")
	assert.Error(t, err)

	// Deleting again is idempotent.
	assert.NoError(t, s.Delete(ctx, "proofs/order-1/receipt.jpg"))
}

func TestLocalStorage_List(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Put(ctx, "proofs/a/1.jpg", strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)
	_, err = s.Put(ctx, "proofs/b/2.jpg", strings.NewReader("y"), "image/jpeg")
	require.NoError(t, err)
	_, err = s.Put(ctx, "products/p.jpg", strings.NewReader("z"), "image/jpeg")
	require.NoError(t, err)

	keys, err := s.List(ctx, "proofs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"proofs/a/1.jpg", "proofs/b/2.jpg"}, keys)

	// Unknown prefix lists nothing rather than failing.
	none, err := s.List(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
