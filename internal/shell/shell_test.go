package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

func newShell(t *testing.T, opts Options) (*Shell, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s := New(out, zaptest.NewLogger(t), opts)
	t.Cleanup(s.Close)
	return s, out
}

func script(lines ...string) string { return strings.Join(lines, "\n") + "\n" }

func lastLine(out *bytes.Buffer) string {
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	return lines[len(lines)-1]
}

func TestShell(t *testing.T) {
	ctx := context.Background()

	t.Run("Transcript", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Run(ctx, strings.NewReader(script(
			"# a comment",
			"new",
			"it a",
			"it b",
			"it c",
			"reverseK 2",
			"",
			"rh b",
			"size",
		))))
		assert.Equal(t, 0, s.Failed())
		assert.Equal(t, strings.Join([]string{
			"l = []",
			"l = [a]",
			"l = [a b]",
			"l = [a b c]",
			"l = [b a c]",
			"Removed b from queue",
			"l = [a c]",
			"Queue size = 2",
			"l = [a c]",
		}, "\n")+"\n", out.String())
	})
	t.Run("QuotedValues", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Exec("new"))
		require.NoError(t, s.Exec(`ih "hello world" 2`))
		assert.Equal(t, "l = [hello world hello world]", lastLine(out))
		assert.Equal(t, 2, s.Current().Size)
	})
	t.Run("Dedup", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it a 2", "it b", "it c 2", "dedup"} {
			require.NoError(t, s.Exec(line))
		}
		assert.Equal(t, "l = [b]", lastLine(out))
	})
	t.Run("DedupTooSmall", func(t *testing.T) {
		s, _ := newShell(t, Options{})
		require.NoError(t, s.Exec("new"))
		assert.Error(t, s.Exec("dedup"))
		assert.Equal(t, 1, s.Failed())
	})
	t.Run("SortDescending", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it b", "it c", "it a", "option descend 1", "sort"} {
			require.NoError(t, s.Exec(line))
		}
		assert.Equal(t, "l = [c b a]", lastLine(out))
		assert.True(t, s.Options().Descend)
	})
	t.Run("AscendDescend", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it 5", "it 2", "it 9", "it 3", "it 8", "descend"} {
			require.NoError(t, s.Exec(line))
		}
		assert.Equal(t, "l = [9 8]", lastLine(out))
		assert.Contains(t, out.String(), "2 element(s) remain")

		require.NoError(t, s.Exec("ascend"))
		assert.Equal(t, "l = [8]", lastLine(out))
	})
	t.Run("Merge", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it 1", "it 3", "it 5", "new", "it 2", "it 4", "merge"} {
			require.NoError(t, s.Exec(line))
		}
		assert.Equal(t, "l = [1 2 3 4 5]", lastLine(out))
		assert.Equal(t, 1, s.Queues())
		assert.Equal(t, 5, s.Current().Size)
		assert.Equal(t, 0, s.Current().ID)
	})
	t.Run("SwitchQueues", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it x", "new", "it y", "new"} {
			require.NoError(t, s.Exec(line))
		}
		require.NoError(t, s.Exec("next"))
		assert.Equal(t, "l = [x]", lastLine(out))
		require.NoError(t, s.Exec("prev"))
		assert.Equal(t, "l = []", lastLine(out))
		require.NoError(t, s.Exec("prev"))
		assert.Equal(t, "l = [y]", lastLine(out))

		out.Reset()
		require.NoError(t, s.Exec("show"))
		assert.Equal(t, " q 0: [x]\n*q 1: [y]\n q 2: []\n", out.String())
	})
	t.Run("Free", func(t *testing.T) {
		s, out := newShell(t, Options{})
		for _, line := range []string{"new", "it x", "new", "it y", "free"} {
			require.NoError(t, s.Exec(line))
		}
		assert.Equal(t, "l = [x]", lastLine(out))
		require.NoError(t, s.Exec("free"))
		assert.Equal(t, "l = NULL", lastLine(out))
		assert.Equal(t, 0, s.Queues())
		assert.ErrorIs(t, s.Exec("free"), ErrNoQueue)
	})
	t.Run("Errors", func(t *testing.T) {
		s, out := newShell(t, Options{})
		assert.ErrorIs(t, s.Exec("it a"), ErrNoQueue)
		assert.ErrorIs(t, s.Exec("bogus"), ErrUnknownCommand)
		require.NoError(t, s.Exec("new"))
		assert.ErrorIs(t, s.Exec("rh"), ErrEmptyQueue)
		assert.ErrorIs(t, s.Exec("it"), ErrUsage)
		assert.ErrorIs(t, s.Exec("it a zero"), ErrUsage)
		assert.ErrorIs(t, s.Exec("reverseK x"), ErrUsage)
		assert.ErrorIs(t, s.Exec(`it "unterminated`), ErrUsage)
		assert.Equal(t, 7, s.Failed())
		assert.Contains(t, out.String(), "ERROR: ")
		assert.Contains(t, out.String(), "usage: it str [n]")
	})
	t.Run("Mismatch", func(t *testing.T) {
		s, _ := newShell(t, Options{})
		require.NoError(t, s.Exec("new"))
		require.NoError(t, s.Exec("it actual"))
		assert.ErrorIs(t, s.Exec("rh expected"), ErrMismatch)
		assert.True(t, s.Current().Queue.Empty())
	})
	t.Run("TruncatedRemoval", func(t *testing.T) {
		s, out := newShell(t, Options{Length: 4})
		require.NoError(t, s.Exec("new"))
		require.NoError(t, s.Exec("it abcdef"))
		require.NoError(t, s.Exec("rh abcdef"))
		assert.Contains(t, out.String(), "Removed abc from queue")
	})
	t.Run("StrictStopsScript", func(t *testing.T) {
		s, out := newShell(t, Options{Strict: true})
		err := s.Run(ctx, strings.NewReader(script("new", "rh", "it never")))
		assert.ErrorIs(t, err, ErrEmptyQueue)
		assert.NotContains(t, out.String(), "never")
	})
	t.Run("LenientContinues", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Run(ctx, strings.NewReader(script("new", "rh", "it after"))))
		assert.Equal(t, 1, s.Failed())
		assert.Equal(t, "l = [after]", lastLine(out))
	})
	t.Run("Quit", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Run(ctx, strings.NewReader(script("new", "quit", "it ignored"))))
		assert.True(t, s.Done())
		assert.NotContains(t, out.String(), "ignored")
	})
	t.Run("Canceled", func(t *testing.T) {
		s, _ := newShell(t, Options{})
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Run(cctx, strings.NewReader(script("new"))), context.Canceled)
		assert.Equal(t, 0, s.Queues())
	})
	t.Run("Echo", func(t *testing.T) {
		s, out := newShell(t, Options{Echo: true})
		require.NoError(t, s.Exec("new"))
		assert.True(t, strings.HasPrefix(out.String(), "cmd> new\n"))
	})
	t.Run("Width", func(t *testing.T) {
		s, out := newShell(t, Options{Width: 5})
		require.NoError(t, s.Exec("new"))
		require.NoError(t, s.Exec("it abcdefghij"))
		assert.Equal(t, "l = [ab...]", lastLine(out))
	})
	t.Run("Source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trace.cmd")
		require.NoError(t, os.WriteFile(path, []byte(script("new", "it z", "it y", "sort")), 0o600))

		s, out := newShell(t, Options{})
		require.NoError(t, s.Exec("source "+path))
		assert.Equal(t, "l = [y z]", lastLine(out))

		assert.Error(t, s.Exec("source "+filepath.Join(t.TempDir(), "missing")))
	})
	t.Run("StrictSourceReportsOnce", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trace.cmd")
		require.NoError(t, os.WriteFile(path, []byte(script("new", "rh", "it never")), 0o600))

		s, out := newShell(t, Options{Strict: true})
		err := s.Run(ctx, strings.NewReader(script("source "+path, "it after")))
		assert.ErrorIs(t, err, ErrEmptyQueue)
		assert.Equal(t, 1, s.Failed())
		assert.Equal(t, 1, strings.Count(out.String(), "ERROR: "))
		assert.NotContains(t, out.String(), "never")
		assert.NotContains(t, out.String(), "after")
	})
	t.Run("Help", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Exec("help"))
		assert.Contains(t, out.String(), "reverseK [K]")
		assert.Contains(t, out.String(), "Merge all the queues")
	})
	t.Run("Close", func(t *testing.T) {
		s, _ := newShell(t, Options{})
		require.NoError(t, s.Exec("new"))
		require.NoError(t, s.Exec("new"))
		s.Close()
		assert.Equal(t, 0, s.Queues())
		assert.Nil(t, s.Current())
	})
}

func TestOptions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts := Options{}.withDefaults()
		assert.Equal(t, DefaultLength, opts.Length)
	})
	t.Run("Set", func(t *testing.T) {
		var opts Options
		require.NoError(t, opts.Set("length", "16"))
		require.NoError(t, opts.Set("descend", "1"))
		require.NoError(t, opts.Set("echo", "true"))
		require.NoError(t, opts.Set("strict", "0"))
		require.NoError(t, opts.Set("width", "0"))
		assert.Equal(t, Options{Length: 16, Descend: true, Echo: true}, opts)
	})
	t.Run("Invalid", func(t *testing.T) {
		var opts Options
		assert.ErrorIs(t, opts.Set("length", "1"), ErrUsage)
		assert.ErrorIs(t, opts.Set("width", "-3"), ErrUsage)
		assert.ErrorIs(t, opts.Set("descend", "maybe"), ErrUsage)
		assert.ErrorIs(t, opts.Set("colour", "1"), ErrUsage)
	})
	t.Run("Display", func(t *testing.T) {
		s, out := newShell(t, Options{})
		require.NoError(t, s.Exec("option"))
		assert.Contains(t, out.String(), "length\t1024")
		assert.Contains(t, out.String(), "descend\t0")
	})
}
