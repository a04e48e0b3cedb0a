package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
	"github.com/npillmayer/marklay/core/locate/resources"
	"github.com/npillmayer/marklay/engine/content"
	"github.com/npillmayer/marklay/engine/content/contentdbg"
	"github.com/npillmayer/marklay/input/markdown"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `---
title: Release Notes
author: Jane Doe
keywords: [release]
lang: en-GB
---
# Release Notes

Some **bold** and *italic* text.

- first
- second

> quoted

![diagram](diagram.png)
`

func writePNG(t *testing.T, dir, name string, w, h int) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func TestMarkdown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.convert")
	defer teardown()
	//
	dir := t.TempDir()
	writePNG(t, dir, "diagram.png", 64, 32)
	warnings, handler := collectWarnings()
	doc, err := Markdown(context.Background(), []byte(sample), nil,
		WithImageResolver(resources.NewResolver(resources.WithBaseDir(dir))), handler)
	require.NoError(t, err)
	assert.Empty(t, *warnings)
	t.Logf("\n%s", contentdbg.Outline(doc.Content))
	//
	assert.Equal(t, "Release Notes", doc.Info.Title)
	assert.Equal(t, "Jane Doe", doc.Info.Author)
	assert.Equal(t, []string{"release"}, doc.Info.Keywords)
	assert.Equal(t, "en-GB", doc.Language.String())
	assert.Equal(t, []content.Kind{
		content.KindHeading, content.KindParagraph, content.KindList,
		content.KindQuote, content.KindImage,
	}, kinds(doc.Content))
	img := doc.Content[4].(*content.ImageRef)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 64.0, img.Width.Points())
	//
	def, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(def), `"fontSize":36`)
	assert.Contains(t, string(def), `"image":"data:image/png;base64,`)
}

func TestMarkdownTokenizers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.convert")
	defer teardown()
	//
	src := []byte("## Title\n\nBody with `code`.\n\n1. one\n2. two\n\n***\n")
	gm, err := Markdown(context.Background(), src, nil)
	require.NoError(t, err)
	rs, err := Markdown(context.Background(), src, nil, WithTokenizer(markdown.NewRSC()))
	require.NoError(t, err)
	assert.Equal(t, contentdbg.Outline(gm.Content), contentdbg.Outline(rs.Content))
	assert.Equal(t, 30.0, gm.Content[0].(*content.Heading).Style.FontSize)
}

func TestMarkdownErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.convert")
	defer teardown()
	//
	doc, err := Markdown(context.Background(), []byte("---\ntitle: [\n---\ntext\n"), nil)
	assert.Nil(t, doc)
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	doc, err = Markdown(context.Background(), []byte("---\nlang: \"???\"\n---\ntext\n"), nil)
	assert.Nil(t, doc)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestFromConfig(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"heading-font-sizes": "40, 32",
		"heading-underline":  "false",
		"image-max-width":    "100bp",
		"image-workers":      "2",
	})
	defer teardown()
	//
	c, err := FromConfig(GlobalConfiguration())
	require.NoError(t, err)
	assert.Equal(t, 100*dimen.BP, c.maxWidth)
	doc, err := c.Markdown(context.Background(), []byte("# One\n\n## Two\n\n### Three\n"), nil)
	require.NoError(t, err)
	h := doc.Content[1].(*content.Heading)
	assert.Equal(t, 32.0, h.Style.FontSize)
	assert.False(t, h.Style.Underline)
	assert.Equal(t, 24.0, doc.Content[2].(*content.Heading).Style.FontSize)
}

func TestFromBadConfig(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"image-max-width": "wide",
	})
	defer teardown()
	//
	_, err := FromConfig(GlobalConfiguration())
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestMaxImageWidthPercentage(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"image-max-width": "50%",
	})
	defer teardown()
	//
	c, err := FromConfig(GlobalConfiguration())
	require.NoError(t, err)
	full := dimen.DINA4.ContentWidth(dimen.DefaultPageMargin)
	assert.InDelta(t, full.Points()/2, c.maxWidth.Points(), 0.001)
}
