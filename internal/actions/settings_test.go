package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/testutil"
	"github.com/cto-ai/clif/internal/usage"
)

func TestGetSetting(t *testing.T) {
	f := newFixture(t)
	settings := testutil.NewSettings(t, "[display]\npager = \"more\"\n")
	ctx := context.Background()

	v, err := f.deps.getSetting(ctx, GetSetting("pager"), settings)
	require.NoError(t, err)
	require.Equal(t, "more", v)

	v, err = f.deps.getSetting(ctx, GetSetting("history_limit"), settings)
	require.NoError(t, err)
	require.Equal(t, "20", v)

	_, err = f.deps.getSetting(ctx, GetSetting("nope"), settings)
	var usageErr *usage.Error
	require.ErrorAs(t, err, &usageErr)
	require.Equal(t, usage.ErrInvalidSettingKey, usageErr.Kind)
}

func TestGetSetting_OpaqueSettings(t *testing.T) {
	f := newFixture(t)
	_, err := f.deps.getSetting(context.Background(), GetSetting("pager"), 42)
	require.Equal(t, "ENOSETTINGS", intent.AsFailure(err).Extra["code"])
}

func TestListSettings(t *testing.T) {
	f := newFixture(t)
	settings := testutil.NewSettings(t, "[display]\ntheme = \"mono\"\n")

	got, err := f.deps.listSettings(context.Background(), ListSettings(), settings)
	require.NoError(t, err)

	rows := got.([]Setting)
	require.NotEmpty(t, rows)
	require.Equal(t, "pager", rows[0].Key)
	require.Equal(t, "Display", rows[0].Section)
	require.Equal(t, "default", rows[0].Source)

	var theme Setting
	for _, r := range rows {
		if r.Key == "theme" {
			theme = r
		}
	}
	require.Equal(t, "mono", theme.Value)
	require.Equal(t, "file", theme.Source)
}

func TestSetAndUnsetSetting(t *testing.T) {
	f := newFixture(t)
	settings := testutil.NewSettings(t, "")
	ctx := context.Background()

	_, err := f.deps.setSetting(ctx, SetSetting("history_limit", "5"), settings)
	require.NoError(t, err)
	v, _ := settings.Get("history_limit")
	require.Equal(t, "5", v)

	_, err = f.deps.unsetSetting(ctx, UnsetSetting("history_limit"), settings)
	require.NoError(t, err)
	v, _ = settings.Get("history_limit")
	require.Equal(t, "20", v)

	_, err = f.deps.setSetting(ctx, SetSetting("bogus", "1"), settings)
	require.Equal(t, 1, usage.ExitCode(err))
	require.True(t, errors.As(err, new(*usage.Error)))
}

func TestSetSetting_ReadOnly(t *testing.T) {
	f := newFixture(t)
	_, err := f.deps.setSetting(context.Background(), SetSetting("pager", "cat"), map[string]string{})
	require.Equal(t, "EROFS", intent.AsFailure(err).Extra["code"])
}
