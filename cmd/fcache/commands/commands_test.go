package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fcache/cmd/fcache/commands"
	"go.trai.ch/fcache/internal/app"
	"go.trai.ch/fcache/internal/build"
)

type mockApp struct {
	statusFunc func(ctx context.Context, opts app.StatusOptions) error
	commitFunc func(ctx context.Context, opts app.CommitOptions) error
	showFunc   func(ctx context.Context, opts app.ShowOptions) error
	flushFunc  func(ctx context.Context, opts app.FlushOptions) error
}

func (m *mockApp) Status(ctx context.Context, opts app.StatusOptions) error {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Commit(ctx context.Context, opts app.CommitOptions) error {
	if m.commitFunc != nil {
		return m.commitFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Show(ctx context.Context, opts app.ShowOptions) error {
	if m.showFunc != nil {
		return m.showFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Flush(ctx context.Context, opts app.FlushOptions) error {
	if m.flushFunc != nil {
		return m.flushFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Status(t *testing.T) {
	var captured app.StatusOptions
	mock := &mockApp{
		statusFunc: func(_ context.Context, opts app.StatusOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"status", "--root", "/work/proj", "--flush", "--all", "--store-backend", "sqlite"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.StatusOptions{
		Root:          "/work/proj",
		Flush:         true,
		ShowUnchanged: true,
		Store:         app.StoreOptions{Backend: "sqlite"},
	}, captured)
}

func TestCommands_Commit(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.CommitOptions
		mock := &mockApp{
			commitFunc: func(_ context.Context, opts app.CommitOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"commit", "-r", "proj", "-f", "--store-path", "/tmp/store"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.CommitOptions{
			Root:  "proj",
			Flush: true,
			Store: app.StoreOptions{Path: "/tmp/store"},
		}, captured)
	})

	t.Run("collects pending files", func(t *testing.T) {
		var captured app.CommitOptions
		mock := &mockApp{
			commitFunc: func(_ context.Context, opts app.CommitOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"commit", "--pending", "a.txt", "-p", "sub/b.txt,c.txt"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"a.txt", "sub/b.txt", "c.txt"}, captured.Pending)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			commitFunc: func(_ context.Context, _ app.CommitOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"commit"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"commit", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Show(t *testing.T) {
	var captured app.ShowOptions
	mock := &mockApp{
		showFunc: func(_ context.Context, opts app.ShowOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"show", "--root", "proj"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "proj", captured.Root)
}

func TestCommands_Flush(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantRoots []string
	}{
		{name: "current directory", args: []string{"flush"}, wantRoots: []string{}},
		{name: "several roots", args: []string{"flush", "a", "b"}, wantRoots: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.FlushOptions
			mock := &mockApp{
				flushFunc: func(_ context.Context, opts app.FlushOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.ElementsMatch(t, tt.wantRoots, captured.Roots)
		})
	}
}

func TestCommands_JSONFlag(t *testing.T) {
	var switched bool
	cli := commands.New(&mockApp{}).WithJSONSwitch(func(enable bool) {
		switched = enable
	})
	cli.SetArgs([]string{"show", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, switched)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "fcache version "+build.Version)
}
