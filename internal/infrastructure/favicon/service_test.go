package favicon_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/fsearch/internal/infrastructure/favicon"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func solidPNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestService_LoadFetchesOnceThenCaches(t *testing.T) {
	icon := solidPNG(t, color.RGBA{R: 0xff, A: 0xff})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(icon)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	svc := favicon.NewService(dir, time.Second)

	ctx := testCtx()
	data, err := svc.Load(ctx, srv.URL+"/icon.png")
	require.NoError(t, err)
	assert.Equal(t, icon, data)

	data, err = svc.Load(ctx, srv.URL+"/icon.png")
	require.NoError(t, err)
	assert.Equal(t, icon, data)
	assert.Equal(t, int32(1), hits.Load())

	data, err = svc.Load(ctx, srv.URL+"/missing.png")
	require.NoError(t, err)
	assert.Nil(t, data, "non-OK status falls back to the placeholder")

	svc.Close()

	// The disk tier survives a restart.
	cache := favicon.NewCache(dir)
	t.Cleanup(cache.Close)
	path := cache.DiskPath(srv.URL + "/icon.png")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
	got, ok := cache.Get(srv.URL + "/icon.png")
	require.True(t, ok)
	assert.Equal(t, icon, got)
}

func TestService_LoadIgnoresNonHTTP(t *testing.T) {
	svc := favicon.NewService("", time.Second)
	t.Cleanup(svc.Close)

	for _, u := range []string{"", "chrome://favicon/x", "data:image/png;base64,AA=="} {
		data, err := svc.Load(testCtx(), u)
		require.NoError(t, err)
		assert.Nil(t, data, u)
	}
}

func TestPageFaviconURL(t *testing.T) {
	assert.Equal(t, "https://icons.duckduckgo.com/ip3/go.dev.ico", favicon.PageFaviconURL("https://go.dev/doc"))
	assert.Empty(t, favicon.PageFaviconURL("about:blank"))
}

func TestSwatch(t *testing.T) {
	hex, ok := favicon.Swatch(solidPNG(t, color.RGBA{R: 0xff, A: 0xff}))
	require.True(t, ok)
	assert.Equal(t, "#ff0000", hex)

	_, ok = favicon.Swatch([]byte("not an image"))
	assert.False(t, ok)

	_, ok = favicon.Swatch(nil)
	assert.False(t, ok)
}

func TestCache_DiskPathsDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	cache := favicon.NewCache(dir)
	t.Cleanup(cache.Close)

	a := cache.DiskPath("http://x.test/a/b")
	b := cache.DiskPath("http://x.test/a_b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, dir, filepath.Dir(a))

	cache.Set("http://x.test/a/b", []byte("one"))
	cache.Set("http://x.test/a_b", []byte("two"))
	cache.Close()

	reopened := favicon.NewCache(dir)
	t.Cleanup(reopened.Close)
	got, ok := reopened.Get("http://x.test/a/b")
	require.True(t, ok)
	assert.Equal(t, []byte("one"), got)
	got, ok = reopened.Get("http://x.test/a_b")
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got)

	assert.Empty(t, favicon.NewCache("").DiskPath("k"))
}
