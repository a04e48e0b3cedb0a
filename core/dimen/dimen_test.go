package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marklay.core")
	defer teardown()
	//
	d, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	d, err = ParseDimen("515")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if d != 515*BP {
		t.Errorf("(3) expected unit-less value to be in bp, is %d", d)
	}
	//
	d, err = ParseDimen("0.5in")
	assert.NoError(t, err)
	assert.Equal(t, IN/2, d)
	//
	_, err = ParseDimen("20%")
	assert.Error(t, err)
	_, err = ParseDimen("3em")
	assert.Error(t, err)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, 100*BP, FromPixels(100, 72))
	assert.Equal(t, 100*BP, FromPixels(100, 0))
	assert.Equal(t, IN, FromPixels(300, 300))
	assert.InDelta(t, 12.5, FromPoints(12.5).Points(), 0.0001)
}

func TestFitWidth(t *testing.T) {
	w, h := FitWidth(1000*BP, 500*BP, 500*BP)
	assert.Equal(t, 500*BP, w)
	assert.Equal(t, 250*BP, h)
	w, h = FitWidth(100*BP, 50*BP, 500*BP)
	assert.Equal(t, 100*BP, w)
	assert.Equal(t, 50*BP, h)
	w, _ = FitWidth(1000*BP, 500*BP, 0)
	assert.Equal(t, 1000*BP, w)
}

func TestContentWidth(t *testing.T) {
	w := DINA4.ContentWidth(DefaultPageMargin)
	assert.InDelta(t, 515.27, w.Points(), 0.1)
}
