package convert

import (
	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
	"github.com/npillmayer/marklay/core/locate/resources"
	"github.com/npillmayer/marklay/core/percent"
	"github.com/npillmayer/marklay/engine/style"
	"github.com/npillmayer/schuko/gconf"
)

// Configuration is a source of configuration values, such as the global
// configuration (see GlobalConfiguration).
type Configuration interface {
	GetString(key string) string
}

// ConfigMaxImageWidth is the configuration key for the maximum image width,
// given as a dimension, e.g. "15cm" or "400bp", or as a percentage of the
// content width of an A4 page, e.g. "80%".
const ConfigMaxImageWidth = "image-max-width"

// FromConfig creates a converter from configuration values: the image
// resolver settings (see resources.ResolverFromConfig), the maximum image
// width and the style defaults (see style.OptionsFromConfig).
// Options given explicitly take precedence.
func FromConfig(conf Configuration, opts ...Option) (*Converter, error) {
	resolver, err := resources.ResolverFromConfig(conf)
	if err != nil {
		return nil, err
	}
	sopts, err := style.OptionsFromConfig(conf)
	if err != nil {
		return nil, err
	}
	defaults, err := style.Resolve(style.Defaults(), sopts)
	if err != nil {
		return nil, err
	}
	configured := []Option{WithImageResolver(resolver), WithStyleDefaults(defaults)}
	if s := conf.GetString(ConfigMaxImageWidth); s != "" {
		w, err := parseWidth(s)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "invalid %s: %q", ConfigMaxImageWidth, s)
		}
		if w <= 0 {
			return nil, core.Error(core.EINVALID, "%s must be positive: %q", ConfigMaxImageWidth, s)
		}
		configured = append(configured, WithMaxImageWidth(w))
	}
	return New(append(configured, opts...)...), nil
}

func parseWidth(s string) (dimen.Dimen, error) {
	if percent.IsPercentage(s) {
		p, err := percent.FromString(s)
		if err != nil {
			return 0, err
		}
		return p.Of(dimen.DINA4.ContentWidth(dimen.DefaultPageMargin)), nil
	}
	return dimen.ParseDimen(s)
}

// GlobalConfiguration returns the application's global configuration
// (package schuko/gconf) as a Configuration.
func GlobalConfiguration() Configuration {
	return globalConf{}
}

type globalConf struct{}

func (globalConf) GetString(key string) string {
	return gconf.GetString(key)
}
