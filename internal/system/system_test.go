package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)
}

func TestProbeTools(t *testing.T) {
	tools := ProbeTools([]Tool{
		{Name: "shell", Bin: "sh"},
		{Name: "missing", Bin: "cocos2manti-no-such-tool"},
	})
	require.Len(t, tools, 2)
	assert.True(t, tools[0].Found())

	missing := Missing(tools)
	require.Len(t, missing, 1)
	assert.Equal(t, "missing", missing[0].Name)
}

func TestImagePoolClears(t *testing.T) {
	p := NewImagePool()
	img := p.Get(4, 2)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	img.Pix[0] = 255
	p.Put(img)

	again := p.Get(4, 2)
	assert.Equal(t, uint8(0), again.Pix[0])
}

func TestInitResourceLimits(t *testing.T) {
	InitResourceLimits(zap.NewNop())
}
