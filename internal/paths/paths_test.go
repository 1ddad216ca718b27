package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/restrack", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "restrack"), got)
	})
}

func TestDefaultDataDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/restrack", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "restrack"), got)
	})
}

func TestDefaultConfigDir_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	got, err := DefaultConfigDir()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "restrack"), got)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{
			name:   "flag wins over env",
			flag:   "/explicit/config",
			envVal: "/env/config",
			want:   "/explicit/config",
		},
		{
			name:   "env wins when flag empty",
			flag:   "",
			envVal: "/env/config",
			want:   "/env/config",
		},
		{
			name:   "CWD default when both empty",
			flag:   "",
			envVal: "",
			want:   DefaultConfigDirName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			assert.Equal(t, tt.want, ResolveConfigDir(tt.flag))
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{
			name:   "flag wins over env",
			flag:   "/flag/data",
			envVal: "/env/data",
			want:   "/flag/data",
		},
		{
			name:   "env wins when flag empty",
			flag:   "",
			envVal: "/env/data",
			want:   "/env/data",
		},
		{
			name:   "CWD default when both empty",
			flag:   "",
			envVal: "",
			want:   DefaultDataDirName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			assert.Equal(t, tt.want, ResolveDataDir(tt.flag))
		})
	}
}
