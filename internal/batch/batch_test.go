package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.har", "a.har", "notes.txt", "c.har.bak", "report.json")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.har"), 0o755))

	files, err := Discover(dir, ".har")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.har"), filepath.Join(dir, "b.har")}, files)
}

func TestDiscover_FollowsSymlinks(t *testing.T) {
	src := t.TempDir()
	touch(t, src, "real.har")
	require.NoError(t, os.Mkdir(filepath.Join(src, "subdir"), 0o755))

	dir := t.TempDir()
	touch(t, dir, "a.har")
	require.NoError(t, os.Symlink(filepath.Join(src, "real.har"), filepath.Join(dir, "linked.har")))
	require.NoError(t, os.Symlink(filepath.Join(src, "subdir"), filepath.Join(dir, "dirlink.har")))
	require.NoError(t, os.Symlink(filepath.Join(src, "gone.har"), filepath.Join(dir, "dangling.har")))

	files, err := Discover(dir, ".har")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.har"), filepath.Join(dir, "linked.har")}, files)
}

func TestDiscover_Empty(t *testing.T) {
	files, err := Discover(t.TempDir(), ".json")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), ".har")
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseDiscover, fe.Phase)
}

func baseName(path string) (string, error) {
	return strings.TrimSuffix(filepath.Base(path), ".har"), nil
}

func TestRun_Sequential(t *testing.T) {
	files := []string{"/x/a.har", "/x/b.har", "/x/c.har"}
	res, err := Run(context.Background(), zerolog.Nop(), files, baseName, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Rows)
	assert.Empty(t, res.Skipped)
}

func TestRun_NoFiles(t *testing.T) {
	res, err := Run(context.Background(), zerolog.Nop(), nil, baseName, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestRun_ParallelKeepsOrder(t *testing.T) {
	var files []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files = append(files, "/x/"+n+".har")
	}
	var inFlight, peak int32
	fn := func(path string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		// Earlier files finish later.
		time.Sleep(time.Duration('h'-filepath.Base(path)[0]) * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return baseName(path)
	}

	res, err := Run(context.Background(), zerolog.Nop(), files, fn, Options{Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, res.Rows)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

var errBroken = errors.New("broken")

func failOn(name string) AnalyzeFunc[string] {
	return func(path string) (string, error) {
		if filepath.Base(path) == name {
			return "", errBroken
		}
		return baseName(path)
	}
}

func TestRun_AbortsOnFailure(t *testing.T) {
	files := []string{"/x/a.har", "/x/bad.har", "/x/c.har"}
	var calls int32
	fn := func(path string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return failOn("bad.har")(path)
	}

	res, err := Run(context.Background(), zerolog.Nop(), files, fn, Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, errBroken)

	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "/x/bad.har", fe.Path)
	assert.Equal(t, PhaseAnalyze, fe.Phase)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "sequential run stops at the failing file")
}

func TestRun_SkipInvalid(t *testing.T) {
	files := []string{"/x/a.har", "/x/bad.har", "/x/c.har"}
	res, err := Run(context.Background(), zerolog.Nop(), files, failOn("bad.har"), Options{SkipInvalid: true, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, res.Rows)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "/x/bad.har", res.Skipped[0].Path)
	assert.Contains(t, res.Skipped[0].Error(), "bad.har")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, zerolog.Nop(), []string{"/x/a.har"}, baseName, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
