// pkg/commands/apply/apply_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Fake configfs (memory)
// PURPOSE: Test apply command method selection and rejection reporting

package apply_test

import (
	"testing"

	"github.com/arthur-debert/dtovl/pkg/commands/apply"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/testutil"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mount    = "/cfg/overlays"
	firmware = "/lib/firmware"
)

func setup(t *testing.T, overlays ...string) (apply.ApplyOverlaysOptions, *testutil.FakeConfigFS) {
	t.Helper()
	fake := testutil.NewFakeConfigFS(t, mount)
	cfg := config.Default()
	cfg.Mount = mount
	cfg.SearchPath = []string{firmware}
	for _, id := range overlays {
		fake.AddBlob(t, firmware, id, []byte("blob:"+id))
	}
	return apply.ApplyOverlaysOptions{Config: cfg, FS: fake, Overlays: overlays}, fake
}

func TestApplyOverlays_ConfigMethod(t *testing.T) {
	opts, fake := setup(t, "a.dtbo")
	opts.Config.Method = types.MethodPath

	result, err := apply.ApplyOverlays(opts)
	require.NoError(t, err)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, types.MethodPath, result.Applied[0].Method)
	assert.Equal(t, "a.dtbo", fake.Written["1-a.dtbo/path"])
}

func TestApplyOverlays_MethodOverride(t *testing.T) {
	opts, fake := setup(t, "a.dtbo")
	opts.Config.Method = types.MethodPath
	opts.Method = types.MethodBlob

	_, err := apply.ApplyOverlays(opts)
	require.NoError(t, err)
	assert.Equal(t, "blob:a.dtbo", fake.Written["1-a.dtbo/dtbo"])
}

func TestApplyOverlays_Rejected(t *testing.T) {
	opts, fake := setup(t, "a", "b", "c")
	fake.Reject["b"] = "unapplied"

	result, err := apply.ApplyOverlays(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRejected))
	assert.Equal(t, "b", errors.GetErrorDetails(err)["overlay"])
	assert.Equal(t, "unapplied", errors.GetErrorDetails(err)["status"])

	require.NotNil(t, result)
	require.Len(t, result.Applied, 1)
	require.NotNil(t, result.Rejected)
	assert.Equal(t, uint64(2), result.Rejected.Seq)
	assert.ElementsMatch(t, []string{"1-a", "2-b"}, fake.Entries(t))
}

func TestApplyOverlays_NothingToApply(t *testing.T) {
	opts, _ := setup(t)

	_, err := apply.ApplyOverlays(opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestApplyOverlays_DryRun(t *testing.T) {
	opts, fake := setup(t, "a", "b")
	opts.DryRun = true

	result, err := apply.ApplyOverlays(opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Applied, 2)
	assert.Empty(t, fake.Created)
}
