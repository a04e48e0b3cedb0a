package resources

import (
	"bytes"
	"context"
	"encoding/base64"
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

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{0xff, 0, 0, 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadImageFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "red.png"), pngBytes(t, 40, 20), 0644))
	r := NewResolver(WithBaseDir(dir))
	img, err := r.ResolveImage(context.Background(), "red.png").Image()
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 20, img.Height)
	//
	img, err = r.ResolveImage(context.Background(), "file://"+filepath.Join(dir, "red.png")).Image()
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
}

func TestLoadMissingImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	r := NewResolver(WithBaseDir(t.TempDir()))
	_, err := r.ResolveImage(context.Background(), "nope.png").Image()
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestUnsupportedScheme(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	_, err := NewResolver().ResolveImage(context.Background(), "bad://x").Image()
	require.Error(t, err)
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
}

func TestUnsupportedFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	src := "data:text/plain,hello%20world"
	_, err := NewResolver().ResolveImage(context.Background(), src).Image()
	require.Error(t, err)
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
}

func TestDataURL(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 3, 7))
	img, err := NewResolver().ResolveImage(context.Background(), src).Image()
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 7, img.Height)
	//
	_, err = NewResolver().ResolveImage(context.Background(), "data:image/png;base64,!!!").Image()
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestRemoteImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	data := pngBytes(t, 16, 16)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/logo.png" {
			http.NotFound(w, req)
			return
		}
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()
	//
	r := NewResolver(WithHTTPClient(srv.Client()))
	img, err := r.ResolveImage(context.Background(), srv.URL+"/logo.png").Image()
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	//
	_, err = r.ResolveImage(context.Background(), srv.URL+"/missing.png").Image()
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	//
	cached := NewResolver(WithHTTPClient(srv.Client()), WithCacheDir(t.TempDir()))
	for i := 0; i < 2; i++ {
		img, err = cached.ResolveImage(context.Background(), srv.URL+"/logo.png").Image()
		require.NoError(t, err)
		assert.Equal(t, 16, img.Height)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "second cached load must not hit the server")
}

func TestImageTooLarge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.png"), pngBytes(t, 64, 64), 0644))
	_, err := NewResolver(WithBaseDir(dir), WithMaxBytes(10)).ResolveImage(context.Background(), "big.png").Image()
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestAwaitCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.resources")
	defer teardown()
	//
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-block:
		case <-req.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)
	//
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	r := NewResolver(WithHTTPClient(srv.Client()))
	_, err := r.ResolveImage(ctx, srv.URL+"/slow.png").Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolverFromConfig(t *testing.T) {
	dir := t.TempDir()
	teardown := testconfig.QuickConfig(t, map[string]string{
		"image-base-dir": dir,
		"image-workers":  "2",
		"image-max-size": "1 MB",
	})
	defer teardown()
	//
	r, err := ResolverFromConfig(globalConf{})
	require.NoError(t, err)
	assert.Equal(t, dir, r.baseDir)
	assert.Equal(t, 2, cap(r.workers))
	assert.Equal(t, int64(1000000), r.maxBytes)
	assert.Empty(t, r.cacheDir)
}

func TestResolverFromBadConfig(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"image-workers": "many",
	})
	defer teardown()
	//
	_, err := ResolverFromConfig(globalConf{})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestCacheDirPath(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"app-key": "marklay-test",
	})
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cachedir, err := CacheDirPath("images")
	require.NoError(t, err)
	info, err := os.Stat(cachedir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

type globalConf struct{}

func (globalConf) GetString(key string) string {
	return gconf.GetString(key)
}
