package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name    string
		yaml    string
		want    Config
		wantErr bool
	}{
		{
			name: "fills in defaults for an empty file",
			yaml: "",
			want: Default(),
		},
		{
			name: "overrides only the fields present",
			yaml: "credentials:\n  user: bob\n  password: secret\ntimeout: 5s\n",
			want: Config{
				Credentials: Credentials{User: "bob", Password: "secret"},
				Method:      Method{Name: "sample"},
				Timeout:     5 * time.Second,
			},
		},
		{
			name: "full method options",
			yaml: "method:\n  name: filter\n  track: [\"golang\", \"twitter\"]\n  count: 10\n",
			want: Config{
				Method:  Method{Name: "filter", Track: []string{"golang", "twitter"}, Count: 10},
				Timeout: 90 * time.Second,
			},
		},
		{
			name:    "invalid yaml",
			yaml:    "not: [valid",
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o600))

			got, err := Load(path)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
