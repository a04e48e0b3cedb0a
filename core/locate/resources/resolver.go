package resources

import (
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/npillmayer/marklay/core"
)

// DefaultMaxImageBytes limits the size of a single image.
const DefaultMaxImageBytes = 16 << 20

// Resolver loads images from local files, remote URLs and data URLs.
// A Resolver is safe for concurrent use.
type Resolver struct {
	baseDir  string
	cacheDir string
	client   *http.Client
	workers  chan struct{}
	maxBytes int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir sets the directory relative file paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) { r.baseDir = dir }
}

// WithCacheDir enables the download cache for remote images.
func WithCacheDir(dir string) Option {
	return func(r *Resolver) { r.cacheDir = dir }
}

// WithHTTPClient sets the client for fetching remote images.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithWorkers limits the number of images loaded in parallel.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = make(chan struct{}, n)
		}
	}
}

// WithMaxBytes limits the size of a single image.
func WithMaxBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewResolver creates a resolver. Without options, relative paths are
// resolved against the working directory and nothing is cached.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client:   http.DefaultClient,
		workers:  make(chan struct{}, runtime.NumCPU()),
		maxBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configuration is the subset of a configuration a resolver is set up from.
// gconf-backed configurations satisfy it.
type Configuration interface {
	GetString(key string) string
}

// Configuration keys.
const (
	ConfigBaseDir  = "image-base-dir"
	ConfigWorkers  = "image-workers"
	ConfigCache    = "image-cache"
	ConfigMaxBytes = "image-max-size"
)

// ResolverFromConfig creates a resolver from configuration values.
// If `image-cache` is true, remote images are cached below the user's cache
// directory (see CacheDirPath). `image-max-size` is given in humanized form,
// e.g. "8 MB".
func ResolverFromConfig(conf Configuration) (*Resolver, error) {
	var opts []Option
	if dir := conf.GetString(ConfigBaseDir); dir != "" {
		opts = append(opts, WithBaseDir(dir))
	}
	if w := strings.TrimSpace(conf.GetString(ConfigWorkers)); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n <= 0 {
			return nil, core.Error(core.EINVALID, "%s must be a positive integer: %q", ConfigWorkers, w)
		}
		opts = append(opts, WithWorkers(n))
	}
	if m := strings.TrimSpace(conf.GetString(ConfigMaxBytes)); m != "" {
		n, err := humanize.ParseBytes(m)
		if err != nil || n == 0 {
			return nil, core.Error(core.EINVALID, "%s is not a valid size: %q", ConfigMaxBytes, m)
		}
		opts = append(opts, WithMaxBytes(int64(n)))
	}
	if c := conf.GetString(ConfigCache); c != "" {
		on, err := strconv.ParseBool(c)
		if err != nil {
			return nil, core.Error(core.EINVALID, "%s must be a boolean: %q", ConfigCache, c)
		}
		if on {
			dir, err := CacheDirPath("images")
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithCacheDir(dir))
		}
	}
	return NewResolver(opts...), nil
}
