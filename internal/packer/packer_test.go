package packer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return nil, f.err
}

func TestTexturePackerArgs(t *testing.T) {
	r := &fakeRunner{}
	p := &TexturePacker{Runner: r}

	require.NoError(t, p.Pack(context.Background(), "/tmp/in", "/out/main_{n}.json"))
	require.Len(t, r.calls, 1)

	c := r.calls[0]
	assert.Equal(t, TexturePackerBin, c.name)
	assert.Equal(t, "/tmp/in", c.args[0])
	assert.Contains(t, c.args, "--multipack")
	assert.Contains(t, c.args, "pixijs4")
	assert.Contains(t, c.args, "/out/main_{n}.json")
	assert.Equal(t, "--multipack", c.args[len(c.args)-1])
}

func TestTexturePackerError(t *testing.T) {
	r := &fakeRunner{err: errors.New("boom")}
	p := &TexturePacker{Runner: r, Bin: "/opt/tp"}

	err := p.Pack(context.Background(), "in", "out_{n}.json")
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, "/opt/tp", r.calls[0].name)
}

func TestWebPConvert(t *testing.T) {
	r := &fakeRunner{}
	w := &WebP{Runner: r}

	dst, err := w.Convert(context.Background(), "/out/main_0.png")
	require.NoError(t, err)
	assert.Equal(t, "/out/main_0.webp", dst)
	assert.Equal(t, []string{"-q", "85", "/out/main_0.png", "-o", "/out/main_0.webp"}, r.calls[0].args)
}

func TestPNGQuantCompress(t *testing.T) {
	r := &fakeRunner{}
	q := &PNGQuant{Runner: r}

	require.NoError(t, q.Compress(context.Background(), nil))
	assert.Empty(t, r.calls)

	require.NoError(t, q.Compress(context.Background(), []string{"a.png", "b.png"}))
	require.Len(t, r.calls, 1)
	assert.Equal(t, "--quality=65-70", r.calls[0].args[0])
	assert.Equal(t, []string{"a.png", "b.png"}, r.calls[0].args[len(r.calls[0].args)-2:])
}

func TestSpineExport(t *testing.T) {
	r := &fakeRunner{}
	s := &Spine{Runner: r}

	require.NoError(t, s.Export(context.Background(), "hero.spine", "/tmp/out", "export.json"))
	assert.Equal(t, call{name: SpineBin, args: []string{"-i", "hero.spine", "-o", "/tmp/out", "-e", "export.json"}}, r.calls[0])
}

func TestExecRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecRunner{}.Run(ctx, "sleep", "1")
	assert.Error(t, err)
}
