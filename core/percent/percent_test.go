package percent

import (
	"math"
	"testing"

	"github.com/npillmayer/marklay/core"
	"github.com/npillmayer/marklay/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamping(t *testing.T) {
	assert.Equal(t, Percent(0), FromInt(-5))
	assert.Equal(t, Percent(100), FromInt(200))
	assert.Equal(t, Percent(43), FromFloat(42.6))
	assert.Equal(t, Percent(0), FromFloat(math.NaN()))
	assert.Equal(t, Percent(100), FromFloat(math.Inf(1)))
}

func TestFromString(t *testing.T) {
	p, err := FromString(" 80% ")
	require.NoError(t, err)
	assert.Equal(t, Percent(80), p)
	assert.Equal(t, "80%", p.String())
	p, err = FromString("12.5")
	require.NoError(t, err)
	assert.Equal(t, Percent(13), p)
	for _, s := range []string{"120%", "-1%", "wide", "%"} {
		_, err = FromString(s)
		assert.Equal(t, core.EINVALID, core.Code(err), s)
	}
	assert.True(t, IsPercentage("50 %"))
	assert.False(t, IsPercentage("50bp"))
}

func TestOf(t *testing.T) {
	assert.Equal(t, 50*dimen.BP, Percent(50).Of(100*dimen.BP))
	assert.Equal(t, dimen.Zero, Percent(0).Of(100*dimen.BP))
}
