package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/cmd/kiln/commands"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

type mockApp struct {
	calls []string
	opts  app.Options
	clean app.CleanOptions
	err   error
}

func (m *mockApp) record(name string, opts app.Options) error {
	m.calls = append(m.calls, name)
	m.opts = opts
	return m.err
}

func (m *mockApp) Build(_ context.Context, opts app.Options) error   { return m.record("build", opts) }
func (m *mockApp) Dev(_ context.Context, opts app.Options) error     { return m.record("dev", opts) }
func (m *mockApp) Styles(_ context.Context, opts app.Options) error  { return m.record("scss", opts) }
func (m *mockApp) Serve(_ context.Context, opts app.Options) error   { return m.record("srv", opts) }
func (m *mockApp) Vectors(_ context.Context, opts app.Options) error { return m.record("svg", opts) }
func (m *mockApp) Status(_ context.Context, opts app.Options) error  { return m.record("status", opts) }

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.clean = opts
	return m.record("clean", opts.Options)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Dispatch(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "dev"},
		{[]string{"dev"}, "dev"},
		{[]string{"build"}, "build"},
		{[]string{"scss"}, "scss"},
		{[]string{"srv"}, "srv"},
		{[]string{"svg"}, "svg"},
		{[]string{"clean"}, "clean"},
		{[]string{"status"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, m.calls)
		})
	}
}

func TestCommands_GlobalFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "-p", "-m", "development", "-c", "site", "-v")
	require.NoError(t, err)

	assert.Equal(t, app.Options{
		Mode:       "development",
		Production: true,
		ConfigDir:  "site",
		Verbose:    true,
		Output:     "auto",
	}, m.opts)
}

func TestCommands_OutputFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"build", "-o", "tui"}, "tui"},
		{[]string{"svg", "--output", "linear"}, "linear"},
		{[]string{"build", "--ci"}, "linear"},
		{[]string{"svg"}, "auto"},
	}

	for _, tt := range tests {
		m := &mockApp{}
		_, err := execute(t, m, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, m.opts.Output, tt.args)
	}
}

func TestCommands_DevRejectsOutputFlag(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "dev", "--output", "tui")
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestCommands_ServerFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--port", "8080", "--no-open", "--no-notify"},
		{"dev", "--port", "8080", "--no-open", "--no-notify"},
		{"srv", "--port", "8080", "--no-open", "--no-notify"},
	} {
		m := &mockApp{}
		_, err := execute(t, m, args...)
		require.NoError(t, err, args)

		assert.Equal(t, 8080, m.opts.Port)
		assert.True(t, m.opts.NoOpen)
		assert.True(t, m.opts.NoNotify)
	}
}

func TestCommands_BuildRejectsServerFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "--port", "8080")
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestCommands_CleanAll(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "clean", "--all", "--mode", "production")
	require.NoError(t, err)

	assert.True(t, m.clean.All)
	assert.Equal(t, "production", m.clean.Mode)
}

func TestCommands_ReturnsAppError(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, m, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_RejectsArgs(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "extra")
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kiln version "+build.Version)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)
}
