package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/npillmayer/marklay/core"
	"golang.org/x/text/language"
)

// Meta is document metadata from a front matter block, e.g.
//
//     ---
//     title: Release Notes
//     author: Jane Doe
//     keywords: [release, notes]
//     lang: en-GB
//     ---
//
type Meta struct {
	Title    string   `yaml:"title" toml:"title" json:"title"`
	Author   string   `yaml:"author" toml:"author" json:"author"`
	Subject  string   `yaml:"subject" toml:"subject" json:"subject"`
	Keywords []string `yaml:"keywords" toml:"keywords" json:"keywords"`
	Tags     []string `yaml:"tags" toml:"tags" json:"tags"`
	Lang     string   `yaml:"lang" toml:"lang" json:"lang"`
}

// SplitFrontMatter separates a front matter block (YAML, TOML or JSON) from
// markdown source. Source without front matter is returned unchanged, with
// empty metadata.
func SplitFrontMatter(src []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return Meta{}, nil, core.WrapError(err, core.EINVALID, "malformed front matter")
	}
	if len(meta.Keywords) == 0 {
		meta.Keywords = meta.Tags
	}
	tracer().Debugf("front matter: title=%q, lang=%q, %d bytes of body", meta.Title, meta.Lang, len(body))
	return meta, body, nil
}

// Language returns the BCP 47 language tag of a document, or language.Und
// if none is set.
func (m Meta) Language() (language.Tag, error) {
	if m.Lang == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(m.Lang)
	if err != nil {
		return language.Und, core.WrapError(err, core.EINVALID, "invalid document language %q", m.Lang)
	}
	return tag, nil
}
