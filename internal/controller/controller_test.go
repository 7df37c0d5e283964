package controller

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/llehouerou/tinyplay/internal/errmsg"
	"github.com/llehouerou/tinyplay/internal/player"
	"github.com/llehouerou/tinyplay/internal/playlist"
)

func newTestController(t *testing.T, p player.Interface) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	rng := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // deterministic test source
	return New(p, &out, zaptest.NewLogger(t), rng), &out
}

// cancelAfter cancels ctx once the mock has started n tracks.
func cancelAfter(m *player.Mock, n int, cancel context.CancelFunc) {
	m.OnPlay(func(string) {
		if len(m.PlayCalls()) >= n {
			cancel()
		}
	})
}

func TestRun_EmptyPlaylist(t *testing.T) {
	m := player.NewMock()
	c, out := newTestController(t, m)

	err := c.Run(context.Background(), playlist.NewPlaylist(), Options{})

	require.NoError(t, err)
	assert.Equal(t, "Our playlist is now over!\n", out.String())
	assert.Empty(t, m.PlayCalls())
}

func TestRun_EmptyPlaylistQuiet(t *testing.T) {
	m := player.NewMock()
	c, out := newTestController(t, m)

	err := c.Run(context.Background(), playlist.NewPlaylist(), Options{Quiet: true})

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRun_SequentialPlaysOnceEach(t *testing.T) {
	m := player.NewMock()
	c, out := newTestController(t, m)
	tracks := playlist.NewPlaylist("/music/a.mp3", "/music/b.wav")

	err := c.Run(context.Background(), tracks, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"/music/a.mp3", "/music/b.wav"}, m.PlayCalls())
	assert.True(t, tracks.IsEmpty())
	assert.Equal(t,
		"Now playing: /music/a.mp3\n"+
			"Now playing: /music/b.wav\n"+
			"Our playlist is now over!\n",
		out.String())
}

func TestRun_DuplicatesPlayIndependently(t *testing.T) {
	m := player.NewMock()
	c, _ := newTestController(t, m)
	tracks := playlist.NewPlaylist("/a.mp3", "/b.mp3", "/a.mp3")

	require.NoError(t, c.Run(context.Background(), tracks, Options{}))

	assert.Equal(t, []string{"/a.mp3", "/b.mp3", "/a.mp3"}, m.PlayCalls())
}

func TestRun_ShufflePlaysEveryTrackOnce(t *testing.T) {
	m := player.NewMock()
	c, _ := newTestController(t, m)
	all := []string{"/a.mp3", "/b.mp3", "/c.ogg", "/d.wav"}

	require.NoError(t, c.Run(context.Background(), playlist.NewPlaylist(all...), Options{Shuffle: true}))

	played := slices.Clone(m.PlayCalls())
	slices.Sort(played)
	assert.Equal(t, all, played)
}

func TestRun_RepeatSingleTrackLoops(t *testing.T) {
	m := player.NewMock()
	c, out := newTestController(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelAfter(m, 5, cancel)
	tracks := playlist.NewPlaylist("/loop.mp3")

	err := c.Run(ctx, tracks, Options{Repeat: true})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, slices.Repeat([]string{"/loop.mp3"}, 5), m.PlayCalls())
	assert.Equal(t, 1, tracks.Len(), "repeat must never shrink the playlist")
	assert.NotContains(t, out.String(), "Our playlist is now over!")
}

func TestRun_ShuffleRepeatDrawsFromFullSet(t *testing.T) {
	m := player.NewMock()
	c, _ := newTestController(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelAfter(m, 60, cancel)
	all := []string{"/a.mp3", "/b.mp3", "/c.mp3"}
	tracks := playlist.NewPlaylist(all...)

	err := c.Run(ctx, tracks, Options{Shuffle: true, Repeat: true})

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, m.PlayCalls(), 60)
	seen := make(map[string]bool)
	for _, p := range m.PlayCalls() {
		require.Contains(t, all, p)
		seen[p] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 3, tracks.Len())
}

func TestRun_QuietSuppressesAllStatus(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"sequential", Options{Quiet: true}},
		{"shuffle", Options{Quiet: true, Shuffle: true}},
		{"repeat", Options{Quiet: true, Repeat: true}},
		{"shuffle repeat", Options{Quiet: true, Shuffle: true, Repeat: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := player.NewMock()
			c, out := newTestController(t, m)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			cancelAfter(m, 4, cancel)

			_ = c.Run(ctx, playlist.NewPlaylist("/a.mp3", "/b.mp3"), tt.opts)

			assert.NotEmpty(t, m.PlayCalls())
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_PlayErrorIsFatal(t *testing.T) {
	m := player.NewMock()
	boom := errors.New("decode failed")
	m.SetPlayError(boom)
	c, out := newTestController(t, m)
	tracks := playlist.NewPlaylist("/bad.mp3", "/good.mp3")

	err := c.Run(context.Background(), tracks, Options{})

	var te *TrackError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errmsg.OpPlaybackStart, te.Op)
	assert.Equal(t, "/bad.mp3", te.Path)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"/bad.mp3"}, m.PlayCalls(), "no skip-and-continue")
	assert.Empty(t, out.String())
	assert.Equal(t, 2, tracks.Len())
}

func TestRun_StreamErrorIsFatal(t *testing.T) {
	m := player.NewMock()
	boom := errors.New("corrupt frame")
	m.SetStreamError(boom)
	c, out := newTestController(t, m)

	err := c.Run(context.Background(), playlist.NewPlaylist("/a.mp3", "/b.mp3"), Options{})

	var te *TrackError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errmsg.OpPlayback, te.Op)
	assert.Equal(t, "/a.mp3", te.Path)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Now playing: /a.mp3\n", out.String())
}

func TestRun_CancelStopsCurrentTrack(t *testing.T) {
	m := player.NewMock()
	m.SetHold(true)
	c, _ := newTestController(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelAfter(m, 1, cancel)
	tracks := playlist.NewPlaylist("/long.mp3")

	err := c.Run(ctx, tracks, Options{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, m.StopCalls())
	assert.Equal(t, player.Stopped, m.State())
	assert.Equal(t, 1, tracks.Len(), "an interrupted track is not removed")
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	m := player.NewMock()
	c, out := newTestController(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, playlist.NewPlaylist("/a.mp3"), Options{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.PlayCalls())
	assert.Empty(t, out.String())
}

func TestTrackError(t *testing.T) {
	inner := errors.New("eof")
	err := &TrackError{Op: errmsg.OpPlayback, Path: "/x.ogg", Err: inner}

	assert.Equal(t, "/x.ogg: eof", err.Error())
	assert.ErrorIs(t, err, inner)
}
