package resources

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/schuko/gconf"
)

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory). The file appears atomically: partial downloads are
// never visible under fname.
func (r *Resolver) DownloadCachedFile(ctx context.Context, fname string, locator string) error {
	body, err := r.get(ctx, locator)
	if err != nil {
		return err
	}
	defer body.Close()
	out, err := os.CreateTemp(filepath.Dir(fname), ".download-*")
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot create cache file")
	}
	tmp := out.Name()
	defer os.Remove(tmp)
	_, err = io.Copy(out, io.LimitReader(body, r.maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return core.WrapError(err, core.ECONNECTION, "cannot download %s", locator)
	}
	return os.Rename(tmp, fname)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the global configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	appkey := gconf.GetString("app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		tracer().Errorf("application key is not set")
		return "", core.Error(core.EINVALID, "application key is not set, cannot locate cache")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := path.Join(subfolders...)
	cachedir = path.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}

// cacheFileName derives a stable file name for a remote locator.
func cacheFileName(u *url.URL) string {
	sum := sha256.Sum256([]byte(u.String()))
	return hex.EncodeToString(sum[:12]) + path.Ext(u.Path)
}

func (r *Resolver) fetchCached(ctx context.Context, u *url.URL) ([]byte, error) {
	fname := filepath.Join(r.cacheDir, cacheFileName(u))
	if _, err := os.Stat(fname); err == nil {
		tracer().Debugf("cache hit for %s", u)
		return r.readFile(fname)
	}
	if err := r.DownloadCachedFile(ctx, fname, u.String()); err != nil {
		return nil, err
	}
	return r.readFile(fname)
}
