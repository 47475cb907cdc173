package app

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = "./etc/"
		dumpJSON = false
		newPassword = ""
	})

	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := `DevMode = true
[DB]
Engine = "sqlite"
Name = "` + filepath.ToSlash(filepath.Join(dir, "test.db")) + `"
[Log]
LogLevel = "warn"
[Upload]
Dir = "` + filepath.ToSlash(filepath.Join(dir, "uploads")) + `"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir
}

func TestGenkey(t *testing.T) {
	out := strings.TrimSpace(run(t, "genkey"))

	raw, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestConfigDump(t *testing.T) {
	dir := writeConfig(t)

	out := run(t, "config", "dump", "--config", dir)
	assert.Contains(t, out, "[DB]")
	assert.Contains(t, out, "sqlite")

	out = run(t, "config", "dump", "--json", "--config", dir)
	assert.Contains(t, out, `"Engine": "sqlite"`)
}

func TestAdminSetPassword(t *testing.T) {
	dir := writeConfig(t)

	out := run(t, "admin", "set-password", "admin", "--config", dir)
	assert.Contains(t, out, "new password of admin: ")

	out = run(t, "admin", "set-password", "admin", "--password", "s3cr3t", "--config", dir)
	assert.Equal(t, "password of admin updated\n", out)
}
