package trackswipe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// AudioSampleRate is the sample rate of the shared audio context.
const AudioSampleRate = 44100

// bytesPerSecond is the decoded stream rate: 16-bit stereo.
const bytesPerSecond = AudioSampleRate * 4

// endSlack is how close to the end a stopped player must be to count as ended.
const endSlack = 0.05

// MediaSource is a MediaElement that must be polled once per tick to emit
// its events and closed when no longer used.
type MediaSource interface {
	MediaElement
	Poll()
	Close() error
}

// MediaLoader opens the media behind a track URL.
type MediaLoader interface {
	Load(ctx context.Context, url string) (MediaSource, error)
}

// AudioPlayer is a MediaElement backed by an ebiten audio player.
type AudioPlayer struct {
	player    *audio.Player
	duration  float64
	listeners MediaListeners

	metaSent bool
	lastPos  float64
	playing  bool
	ended    bool
}

// NewAudioPlayer decodes data in the given format ("mp3", "ogg" or "wav") and
// creates a paused player on ctx.
func NewAudioPlayer(ctx *audio.Context, data []byte, format string) (*AudioPlayer, error) {
	stream, length, err := decodeAudio(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	p, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("create audio player: %w", err)
	}
	return &AudioPlayer{
		player:   p,
		duration: float64(length) / bytesPerSecond,
	}, nil
}

type lengthStream interface {
	io.ReadSeeker
	Length() int64
}

func decodeAudio(format string, src io.ReadSeeker) (io.ReadSeeker, int64, error) {
	var (
		s   lengthStream
		err error
	)
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "", "mp3":
		s, err = mp3.DecodeWithSampleRate(AudioSampleRate, src)
	case "ogg", "oga", "vorbis":
		s, err = vorbis.DecodeWithSampleRate(AudioSampleRate, src)
	case "wav", "wave":
		s, err = wav.DecodeWithSampleRate(AudioSampleRate, src)
	default:
		return nil, 0, fmt.Errorf("unsupported audio format %q", format)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", format, err)
	}
	return s, s.Length(), nil
}

// Play starts or resumes playback. An ended player restarts from the top.
func (a *AudioPlayer) Play() error {
	if a.ended {
		if err := a.player.SetPosition(0); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
		a.ended = false
	}
	a.player.Play()
	a.playing = true
	return nil
}

// Pause pauses playback.
func (a *AudioPlayer) Pause() {
	a.player.Pause()
	a.playing = false
}

// CurrentTime returns the playback position in seconds.
func (a *AudioPlayer) CurrentTime() float64 {
	return a.player.Position().Seconds()
}

// SetCurrentTime seeks and reports the new position with a time update. A
// failed seek leaves the position unchanged.
func (a *AudioPlayer) SetCurrentTime(seconds float64) {
	if err := a.player.SetPosition(time.Duration(seconds * float64(time.Second))); err != nil {
		return
	}
	a.ended = false
	a.lastPos = a.CurrentTime()
	a.listeners.Emit(MediaEvent{Kind: MediaTimeUpdate})
}

// Duration returns the decoded length in seconds.
func (a *AudioPlayer) Duration() float64 { return a.duration }

// Volume returns the player volume in [0,1].
func (a *AudioPlayer) Volume() float64 { return a.player.Volume() }

// SetVolume sets the player volume in [0,1].
func (a *AudioPlayer) SetVolume(v float64) { a.player.SetVolume(clamp01(v)) }

// Subscribe registers fn for media events.
func (a *AudioPlayer) Subscribe(fn func(MediaEvent)) Subscription {
	return a.listeners.Add(fn)
}

// Poll emits metadata once, a time update whenever the position moved, and
// ended when a playing player stops at the end of the stream.
func (a *AudioPlayer) Poll() {
	if !a.metaSent {
		a.metaSent = true
		a.listeners.Emit(MediaEvent{Kind: MediaMetadataLoaded})
	}
	pos := a.CurrentTime()
	if pos != a.lastPos {
		a.lastPos = pos
		a.listeners.Emit(MediaEvent{Kind: MediaTimeUpdate})
	}
	if a.playing && !a.player.IsPlaying() && pos >= a.duration-endSlack {
		a.playing = false
		a.ended = true
		a.listeners.Emit(MediaEvent{Kind: MediaEnded})
	}
}

// Close releases the underlying player.
func (a *AudioPlayer) Close() error {
	return a.player.Close()
}

// EbitenMediaLoader loads audio over HTTP(S) or from local files into ebiten
// players.
type EbitenMediaLoader struct {
	Context *audio.Context
	Client  *http.Client
}

// NewEbitenMediaLoader returns a loader on the shared audio context, creating
// it on first use.
func NewEbitenMediaLoader(timeout time.Duration) *EbitenMediaLoader {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(AudioSampleRate)
	}
	return &EbitenMediaLoader{Context: ctx, Client: &http.Client{Timeout: timeout}}
}

// Load fetches and decodes the media at rawURL. The format is taken from the
// URL path extension.
func (l *EbitenMediaLoader) Load(ctx context.Context, rawURL string) (MediaSource, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("load media: empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("load media: parse url: %w", err)
	}
	var data []byte
	switch u.Scheme {
	case "http", "https":
		data, err = l.fetch(ctx, rawURL)
	case "file":
		data, err = os.ReadFile(u.Path)
	case "":
		data, err = os.ReadFile(rawURL)
	default:
		err = fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("load media %s: %w", rawURL, err)
	}
	return NewAudioPlayer(l.Context, data, path.Ext(u.Path))
}

func (l *EbitenMediaLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
