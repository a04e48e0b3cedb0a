package resources

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/marklay/core"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, "%s", s)
}

// --- Images ---------------------------------------------------------------

// Image is a resolved image: its encoded bytes together with the format
// name and the intrinsic size in pixels.
type Image struct {
	Source string
	Format string // "png", "jpeg", "gif", "bmp", "tiff" or "webp"
	Data   []byte
	Width  int
	Height int
}

// ImagePromise is the result of ResolveImage. Clients call Image or Await
// to receive the loaded image, blocking until loading has completed.
// A promise delivers its result once.
type ImagePromise interface {
	Image() (*Image, error)
	Await(ctx context.Context) (*Image, error)
}

type imgPlusErr struct {
	img *Image
	err error
}

type imageLoader struct {
	await func(ctx context.Context) (*Image, error)
}

func (loader imageLoader) Image() (*Image, error) {
	return loader.await(context.Background())
}

func (loader imageLoader) Await(ctx context.Context) (*Image, error) {
	return loader.await(ctx)
}

// ResolveImage starts loading an image from a locator and returns a promise
// for it. Loading stops early if ctx is done.
//
// Resolution errors are application errors (see package core) with codes
//
//     EMISSING      file does not exist
//     ECONNECTION   remote image could not be fetched
//     EUNSUPPORTED  unknown locator scheme or image format
//     EINVALID      malformed locator or image too large
//
func (r *Resolver) ResolveImage(ctx context.Context, src string) ImagePromise {
	ch := make(chan imgPlusErr, 1)
	go func(ch chan<- imgPlusErr) {
		defer close(ch)
		select {
		case r.workers <- struct{}{}:
			defer func() { <-r.workers }()
		case <-ctx.Done():
			ch <- imgPlusErr{err: ctx.Err()}
			return
		}
		result := imgPlusErr{}
		result.img, result.err = r.loadImage(ctx, src)
		if result.err != nil {
			tracer().Infof("cannot resolve image %q: %v", src, result.err)
		}
		ch <- result
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (*Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r, ok := <-ch:
				if !ok {
					return nil, core.Error(core.EINTERNAL, "image promise already consumed")
				}
				return r.img, r.err
			}
		},
	}
}

func (r *Resolver) loadImage(ctx context.Context, src string) (*Image, error) {
	data, err := r.loadBytes(ctx, src)
	if err != nil {
		return nil, err
	}
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EUNSUPPORTED, "unsupported image format: %s", shorten(src))
	}
	tracer().Infof("resolved image %s: %s %dx%d, %s", shorten(src), format,
		config.Width, config.Height, humanize.Bytes(uint64(len(data))))
	return &Image{
		Source: src,
		Format: format,
		Data:   data,
		Width:  config.Width,
		Height: config.Height,
	}, nil
}

func (r *Resolver) loadBytes(ctx context.Context, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, core.Error(core.EINVALID, "empty image locator")
	}
	if strings.HasPrefix(src, "data:") {
		return decodeDataURL(src)
	}
	u, err := url.Parse(src)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "malformed image locator: %s", src)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return r.fetch(ctx, u)
	case "file":
		return r.readFile(u.Path)
	case "":
		return r.readFile(src)
	}
	if len(u.Scheme) == 1 { // Windows drive letter
		return r.readFile(src)
	}
	return nil, core.Error(core.EUNSUPPORTED, "unsupported image locator scheme %q: %s", u.Scheme, src)
}

func (r *Resolver) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFound(path, imageResourceType)
		}
		return nil, core.WrapError(err, core.EMISSING, "cannot read image file %s", path)
	}
	defer f.Close()
	return r.readLimited(f, path)
}

func (r *Resolver) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	if r.cacheDir != "" {
		return r.fetchCached(ctx, u)
	}
	body, err := r.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return r.readLimited(body, u.String())
}

func (r *Resolver) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "malformed image URL: %s", url)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot fetch image %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := fmt.Errorf("response: %v", resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			return nil, core.WrapError(err, core.EMISSING, "image not found: %s", url)
		}
		return nil, core.WrapError(err, core.ECONNECTION, "cannot fetch image %s", url)
	}
	return resp.Body, nil
}

func (r *Resolver) readLimited(rd io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, r.maxBytes+1))
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "cannot read image %s", shorten(name))
	}
	if int64(len(data)) > r.maxBytes {
		return nil, core.Error(core.EINVALID, "image %s exceeds %s", shorten(name),
			humanize.Bytes(uint64(r.maxBytes)))
	}
	return data, nil
}

func decodeDataURL(src string) ([]byte, error) {
	header, payload, found := strings.Cut(src, ",")
	if !found {
		return nil, core.Error(core.EINVALID, "malformed data URL")
	}
	if !strings.HasSuffix(header, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "malformed data URL")
		}
		return []byte(s), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "malformed base64 data URL")
	}
	return data, nil
}

// shorten keeps data URLs from flooding error messages and traces.
func shorten(src string) string {
	if len(src) > 64 && strings.HasPrefix(src, "data:") {
		return src[:32] + "…"
	}
	return src
}
