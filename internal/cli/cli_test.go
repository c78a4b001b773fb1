package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/coursesite/internal/site/sitetest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COURSESITE_LOG_LEVEL", "error")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateCleanSite(t *testing.T) {
	dir := sitetest.Write(t, nil)

	out, err := run(t, "validate", "--site-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no issues found")
}

func TestValidateReportsErrors(t *testing.T) {
	dir := sitetest.Write(t, map[string]string{"docs/block-1/functions.md": ""})

	out, err := run(t, "validate", "--site-dir", dir)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out, "doc-missing")
	assert.Contains(t, out, "block-1/functions")
}

func TestValidateJSON(t *testing.T) {
	dir := sitetest.Write(t, nil)

	out, err := run(t, "validate", "--site-dir", dir, "-o", "json")
	require.NoError(t, err)

	var rep struct {
		Issues []json.RawMessage `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.NotNil(t, rep.Issues)
	assert.Empty(t, rep.Issues)
}

func TestValidateMissingSite(t *testing.T) {
	_, err := run(t, "validate", "--site-dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestExportWritesArtifacts(t *testing.T) {
	dir := sitetest.Write(t, nil)
	out := t.TempDir()

	stdout, err := run(t, "export", "--site-dir", dir, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "sidebars.json")

	for _, name := range []string{
		"sidebars.json",
		"docusaurus.config.json",
		"sitemap.xml",
		filepath.Join("i18n", "uk", "code.json"),
		filepath.Join("i18n", "en", "code.json"),
	} {
		_, statErr := os.Stat(filepath.Join(out, name))
		assert.NoError(t, statErr, name)
	}
}

func TestExportRefusesBrokenSite(t *testing.T) {
	dir := sitetest.Write(t, map[string]string{"docs/block-1/functions.md": ""})
	out := t.TempDir()

	_, err := run(t, "export", "--site-dir", dir, "--out", out)
	require.ErrorIs(t, err, ErrValidationFailed)
	_, statErr := os.Stat(filepath.Join(out, "sidebars.json"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = run(t, "export", "--site-dir", dir, "--out", out, "--force")
	require.NoError(t, err)
}

func TestExportRequiresOut(t *testing.T) {
	_, err := run(t, "export", "--site-dir", sitetest.Write(t, nil))
	assert.EqualError(t, err, "--out is required")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "coursesite dev")
}
