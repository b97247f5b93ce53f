package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizsmith/quizsmith/internal/config"
)

func newRootFlagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "quizsmith"}
	c.Flags().String("config", "", "")
	c.Flags().String("audit-db", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestAuditPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		cfgPath string
		want    string
	}{
		{"unset disables auditing", nil, "", ""},
		{"config path", nil, filepath.Join(dir, "env", "audit.db"), filepath.Join(dir, "env", "audit.db")},
		{"flag beats config", []string{"--audit-db", filepath.Join(dir, "flag.db")}, filepath.Join(dir, "env.db"), filepath.Join(dir, "flag.db")},
		{"default keyword", []string{"--audit-db", "default"}, "", filepath.Join(dataHome, "quizsmith", "audit.db")},
		{"default keyword from config", nil, "default", filepath.Join(dataHome, "quizsmith", "audit.db")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newRootFlagsCmd(t, tt.args...)
			got, err := auditPath(c, &config.Config{AuditDB: tt.cfgPath})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.DirExists(t, filepath.Dir(got))
			}
		})
	}
}

func TestResolveDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("QUIZSMITH_AUDIT_DB", "")
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "quizsmith.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  level: info\n"), 0o644))

	_, err := resolveDBPath(newRootFlagsCmd(t, "--config", cfgFile))
	assert.ErrorIs(t, err, errAuditDisabled)

	t.Setenv("QUIZSMITH_AUDIT_DB", filepath.Join(dir, "audit.db"))
	p, err := resolveDBPath(newRootFlagsCmd(t, "--config", cfgFile))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audit.db"), p)

	c := newRootFlagsCmd(t, "--config", cfgFile)
	rt, err := setup(c)
	require.NoError(t, err)
	defer rt.Close()
	assert.NotNil(t, rt.store)
}
