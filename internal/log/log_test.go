package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chainguard-dev/clog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	ctx, closer, err := Setup(context.Background(), &buf, false, "")
	require.NoError(t, err)
	defer closer()

	clog.FromContext(ctx).Debug("hidden")
	clog.FromContext(ctx).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	ctx, closer2, err := Setup(context.Background(), &buf, true, "")
	require.NoError(t, err)
	defer closer2()
	clog.FromContext(ctx).Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}

func TestSetupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud-cli.log")
	var buf bytes.Buffer
	ctx, closer, err := Setup(context.Background(), &buf, false, path)
	require.NoError(t, err)

	ctx = With(ctx, "vpc", "vpc-123")
	clog.FromContext(ctx).Debug("deleting vpc")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"deleting vpc"`)
	assert.Contains(t, string(data), `"vpc":"vpc-123"`)
	assert.Empty(t, buf.String())
}

func TestSetupLogFileError(t *testing.T) {
	var buf bytes.Buffer
	_, closer, err := Setup(context.Background(), &buf, false, filepath.Join(t.TempDir(), "missing", "x.log"))
	require.Error(t, err)
	closer()
}
