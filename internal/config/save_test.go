package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSaveSetting_UpdatesScalarPreservingComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`# my config
data_dir: data

# reload on change
auto_refresh: true
`), 0o600))

	require.NoError(t, SaveSetting(path, "auto_refresh", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# my config")
	require.Contains(t, string(data), "# reload on change")
	require.Contains(t, string(data), "auto_refresh: false")
	require.Contains(t, string(data), "data_dir: data")
}

func TestSaveSetting_NestedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`ui:
  show_status_bar: true
  markdown_style: dark
`), 0o600))

	require.NoError(t, SaveSetting(path, "ui.markdown_style", "light"))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "light", v.GetString("ui.markdown_style"))
	require.True(t, v.GetBool("ui.show_status_bar"), "sibling keys survive")
}

func TestSaveSetting_AppendsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: data\n"), 0o600))

	require.NoError(t, SaveSetting(path, "theme.highlight", "#123456"))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "#123456", v.GetString("theme.highlight"))
}

func TestSaveSetting_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, SaveSetting(path, "auto_refresh", true))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.True(t, v.GetBool("auto_refresh"))
}
