package style

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/option"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// optionsSchema describes the JSON options document.
const optionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "headingFontSizes": {
      "type": "array",
      "items": { "type": "number", "exclusiveMinimum": 0, "maximum": 1000 }
    },
    "headingUnderline": { "type": ["boolean", "null"] },
    "defaultFont": { "type": "string" }
  },
  "additionalProperties": false
}`

var compileOptionsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("options.json", strings.NewReader(optionsSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile("options.json")
})

// ParseOptions reads style options from a JSON document of the form
//
//     {
//         "headingFontSizes": [40, 32],
//         "headingUnderline": false,
//         "defaultFont": "Helvetica"
//     }
//
// All fields are optional. The document is checked against a JSON schema
// before decoding, so malformed entries (e.g. non-numeric font sizes) are
// rejected with a descriptive error of code core.EINVALID.
func ParseOptions(data []byte) (*Options, error) {
	schema, err := compileOptionsSchema()
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot compile options schema")
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "options are not valid JSON")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid style options: %s", describe(err))
	}
	opts := &Options{}
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode style options")
	}
	return opts, nil
}

func describe(err error) string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := node.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			parts = append(parts, loc+": "+node.Message)
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return strings.Join(parts, "; ")
}

// Configuration is the subset of a schuko configuration which is needed to
// read style options.
type Configuration interface {
	GetString(key string) string
}

// Configuration keys
const (
	ConfigHeadingSizes     = "heading-font-sizes" // comma separated, e.g. "40,32,28"
	ConfigHeadingUnderline = "heading-underline"  // "true" or "false"
	ConfigDefaultFont      = "default-font"
)

// OptionsFromConfig reads style options from a configuration. Missing keys
// leave the corresponding option unset.
func OptionsFromConfig(conf Configuration) (*Options, error) {
	opts := &Options{}
	if s := strings.TrimSpace(conf.GetString(ConfigHeadingSizes)); s != "" {
		for _, field := range strings.Split(s, ",") {
			size, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, core.WrapError(err, core.EINVALID,
					"configuration %s: %q is not a font size", ConfigHeadingSizes, field)
			}
			opts.HeadingFontSizes = append(opts.HeadingFontSizes, size)
		}
	}
	u, err := option.ParseBool(strings.TrimSpace(conf.GetString(ConfigHeadingUnderline)))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID,
			"configuration %s: not a boolean", ConfigHeadingUnderline)
	}
	opts.HeadingUnderline = u
	opts.DefaultFont = strings.TrimSpace(conf.GetString(ConfigDefaultFont))
	if err := opts.Validate(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid style configuration")
	}
	return opts, nil
}
