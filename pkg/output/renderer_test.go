// pkg/output/renderer_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (buffers, golden files under testdata/golden)
// PURPOSE: Test text, JSON and YAML rendering of ledger results

package output_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/output"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func render(t *testing.T, format string, fn func(*output.Renderer) error) string {
	t.Helper()

	var buf bytes.Buffer
	r, err := output.NewRenderer(&buf, format, false)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func sampleList() *types.ListResult {
	return &types.ListResult{Overlays: []types.OverlayInfo{
		{Seq: 1, Overlay: "a.dtbo", Status: "applied", Path: "/cfg/1-a.dtbo"},
		{Seq: 2, Overlay: "b.dtbo", Status: "unapplied", Path: "/cfg/2-b.dtbo"},
	}}
}

func sampleApply() *types.ApplyResult {
	return &types.ApplyResult{
		Applied: []types.ApplyOutcome{{
			Seq: 1, Overlay: "a.dtbo", Method: types.MethodBlob,
			Blob: "/lib/firmware/a.dtbo", Path: "/cfg/1-a.dtbo",
			Status: "applied", Applied: true,
		}},
		Rejected: &types.ApplyOutcome{
			Seq: 2, Overlay: "b.dtbo", Method: types.MethodBlob,
			Blob: "/lib/firmware/b.dtbo", Path: "/cfg/2-b.dtbo",
			Status: "unapplied",
		},
	}
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := output.NewRenderer(&bytes.Buffer{}, "xml", false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestColorEnabled_NonTerminal(t *testing.T) {
	assert.False(t, output.ColorEnabled(&bytes.Buffer{}))
}

func TestRenderList_JSON(t *testing.T) {
	out := render(t, "json", func(r *output.Renderer) error { return r.RenderList(sampleList()) })
	golden(t).Assert(t, "list_json", []byte(out))
}

func TestRenderList_EmptyJSON(t *testing.T) {
	out := render(t, "json", func(r *output.Renderer) error {
		return r.RenderList(&types.ListResult{Overlays: []types.OverlayInfo{}})
	})
	golden(t).Assert(t, "list_empty_json", []byte(out))
}

func TestRenderList_YAML(t *testing.T) {
	out := render(t, "yaml", func(r *output.Renderer) error { return r.RenderList(sampleList()) })

	var back types.ListResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, *sampleList(), back)
	assert.Contains(t, out, "overlay: a.dtbo")
}

func TestRenderList_Text(t *testing.T) {
	out := render(t, "text", func(r *output.Renderer) error { return r.RenderList(sampleList()) })

	assert.Contains(t, out, "SEQ")
	assert.Contains(t, out, "OVERLAY")
	assert.Contains(t, out, "a.dtbo")
	assert.Contains(t, out, "unapplied")
	assert.Contains(t, out, "/cfg/2-b.dtbo")
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, bytes.Index([]byte(out), []byte("a.dtbo")), bytes.Index([]byte(out), []byte("b.dtbo")))
}

func TestRenderList_TextEmpty(t *testing.T) {
	out := render(t, "text", func(r *output.Renderer) error {
		return r.RenderList(&types.ListResult{Overlays: []types.OverlayInfo{}})
	})
	assert.Equal(t, "No overlays applied.\n", out)
}

func TestRenderApply_JSON(t *testing.T) {
	out := render(t, "json", func(r *output.Renderer) error { return r.RenderApply(sampleApply()) })
	golden(t).Assert(t, "apply_rejected_json", []byte(out))
}

func TestRenderApply_Text(t *testing.T) {
	out := render(t, "text", func(r *output.Renderer) error { return r.RenderApply(sampleApply()) })

	assert.Equal(t,
		"✓ applied a.dtbo (seq 1, blob)\n"+
			"✗ b.dtbo rejected by the kernel: status unapplied, entry left at /cfg/2-b.dtbo\n",
		out)
}

func TestRenderApply_TextDryRun(t *testing.T) {
	result := &types.ApplyResult{
		DryRun: true,
		Applied: []types.ApplyOutcome{
			{Seq: 4, Overlay: "a.dtbo", Method: types.MethodBlob, Blob: "/lib/firmware/a.dtbo"},
			{Seq: 5, Overlay: "b.dtbo", Method: types.MethodPath},
		},
	}
	out := render(t, "text", func(r *output.Renderer) error { return r.RenderApply(result) })

	assert.Equal(t,
		"○ would apply a.dtbo as 4-a.dtbo from /lib/firmware/a.dtbo\n"+
			"○ would apply b.dtbo as 5-b.dtbo\n",
		out)
}

func TestRenderRemove_Text(t *testing.T) {
	tests := []struct {
		name   string
		result *types.RemoveResult
		want   string
	}{
		{
			name: "removed",
			result: &types.RemoveResult{Removed: []types.OverlayInfo{
				{Seq: 3, Overlay: "c"}, {Seq: 1, Overlay: "a"},
			}},
			want: "✓ removed c (seq 3)\n✓ removed a (seq 1)\n",
		},
		{
			name: "dry_run",
			result: &types.RemoveResult{DryRun: true, Removed: []types.OverlayInfo{
				{Seq: 2, Overlay: "b"},
			}},
			want: "○ would remove b (seq 2)\n",
		},
		{
			name:   "nothing",
			result: &types.RemoveResult{Removed: []types.OverlayInfo{}},
			want:   "Nothing to remove.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, "text", func(r *output.Renderer) error { return r.RenderRemove(tt.result) })
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrOverlayNotFound, "no ledger entry for z").
		WithDetail("overlays", []string{"z"})

	t.Run("text", func(t *testing.T) {
		out := render(t, "text", func(r *output.Renderer) error { return r.RenderError(err) })
		assert.Equal(t, "Error: [OVERLAY_NOT_FOUND] no ledger entry for z\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out := render(t, "json", func(r *output.Renderer) error { return r.RenderError(err) })
		golden(t).Assert(t, "error_json", []byte(out))
	})

	t.Run("yaml", func(t *testing.T) {
		out := render(t, "yaml", func(r *output.Renderer) error { return r.RenderError(err) })
		assert.Contains(t, out, "code: OVERLAY_NOT_FOUND")
	})
}
