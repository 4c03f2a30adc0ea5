package upload

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalService(t *testing.T, opts Options) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	p, err := NewLocalProvider(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	s := NewService(p, opts)
	s.now = func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) }
	return s, dir
}

func TestService_ArchiveAndFetch(t *testing.T) {
	s, _ := newLocalService(t, Options{})
	ctx := context.Background()

	obj, err := s.Archive(ctx, []byte("fake-jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "receipts/2025/03/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/"+obj.Key, obj.URL)
	assert.EqualValues(t, 9, obj.Size)

	data, err := s.Fetch(ctx, obj.Key)
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg", string(data))

	require.NoError(t, s.Delete(ctx, obj.Key))
	_, err = s.Fetch(ctx, obj.Key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestService_Validate(t *testing.T) {
	s, _ := newLocalService(t, Options{MaxSize: 4})

	_, err := s.Archive(context.Background(), []byte("12345"), "image/png")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.Archive(context.Background(), []byte("12"), "text/plain")
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	assert.NoError(t, s.Validate(4, "IMAGE/PNG"))
}

func TestService_Disabled(t *testing.T) {
	s := NewService(nil, Options{})
	assert.False(t, s.Enabled())
	assert.Equal(t, "none", s.GetProviderName())
	assert.Empty(t, s.GetURL("x"))

	_, err := s.Archive(context.Background(), []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLocalProvider_KeyCannotEscapeBase(t *testing.T) {
	dir := t.TempDir()
	p, err := NewLocalProvider(dir, "/files")
	require.NoError(t, err)

	_, err = p.Put(context.Background(), "../../etc/evil", []byte("x"), "text/plain")
	require.NoError(t, err)

	data, err := p.Get(context.Background(), "etc/evil")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(context.Background(), ProviderConfig{Provider: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "Local Storage", p.GetProviderName())

	_, err = NewProvider(context.Background(), ProviderConfig{Provider: "ftp"})
	assert.Error(t, err)
}
