package trackswipe

import (
	"fmt"
	"math"
	"slices"
)

// DefaultVolume is the initial player volume on the 0-100 scale.
const DefaultVolume = 70.0

// MediaEventKind identifies a media element signal.
type MediaEventKind uint8

const (
	MediaTimeUpdate     MediaEventKind = iota // playback position changed
	MediaMetadataLoaded                       // duration became known
	MediaEnded                                // playback reached the end
)

// String returns the event name used in logs.
func (k MediaEventKind) String() string {
	switch k {
	case MediaTimeUpdate:
		return "timeupdate"
	case MediaMetadataLoaded:
		return "loadedmetadata"
	case MediaEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MediaEvent is one signal emitted by a MediaElement.
type MediaEvent struct {
	Kind MediaEventKind
}

// MediaElement is the playable audio source behind the player.
type MediaElement interface {
	Play() error
	Pause()
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	Duration() float64
	Volume() float64
	SetVolume(v float64) // v in [0,1]
	Subscribe(fn func(MediaEvent)) Subscription
}

// --- Listener registry ---

type mediaHandler struct {
	id uint32
	fn func(MediaEvent)
}

// MediaListeners is a listener registry for MediaElement implementations.
// The zero value is ready to use.
type MediaListeners struct {
	handlers []mediaHandler
	nextID   uint32
}

// Subscription is a registered media listener. Release it when the player is
// torn down or the source changes.
type Subscription struct {
	id  uint32
	reg *MediaListeners
}

// Release unregisters the listener. Releasing twice is a no-op.
func (s Subscription) Release() {
	if s.reg == nil {
		return
	}
	h := s.reg.handlers
	for i := range h {
		if h[i].id == s.id {
			copy(h[i:], h[i+1:])
			h[len(h)-1] = mediaHandler{}
			s.reg.handlers = h[:len(h)-1]
			return
		}
	}
}

// Add registers fn and returns its subscription.
func (l *MediaListeners) Add(fn func(MediaEvent)) Subscription {
	l.nextID++
	l.handlers = append(l.handlers, mediaHandler{id: l.nextID, fn: fn})
	return Subscription{id: l.nextID, reg: l}
}

// Emit delivers ev to every listener registered when Emit was called.
func (l *MediaListeners) Emit(ev MediaEvent) {
	for _, h := range slices.Clone(l.handlers) {
		h.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (l *MediaListeners) Len() int {
	return len(l.handlers)
}

// --- Playback ---

// Playback tracks position, duration, play state and volume for one media
// element. Position and duration change only in response to media events.
type Playback struct {
	media    MediaElement
	sub      Subscription
	position float64
	duration float64
	playing  bool
	volume   float64 // 0-100

	// OnEnded is called after a MediaEnded event.
	OnEnded func()
}

// NewPlayback creates a detached tracker at the default volume.
func NewPlayback() *Playback {
	return &Playback{volume: DefaultVolume}
}

// Attach subscribes to media, releasing any previous element first. The
// current volume is written to the new element.
func (p *Playback) Attach(media MediaElement) {
	p.Detach()
	if media == nil {
		return
	}
	p.media = media
	p.position = 0
	p.duration = 0
	p.sub = media.Subscribe(p.handle)
	media.SetVolume(p.volume / 100)
}

// Detach pauses the element and releases the subscription.
func (p *Playback) Detach() {
	if p.media == nil {
		return
	}
	p.sub.Release()
	p.sub = Subscription{}
	p.media.Pause()
	p.media = nil
	p.playing = false
	p.position = 0
	p.duration = 0
}

// Attached reports whether a media element is attached.
func (p *Playback) Attached() bool { return p.media != nil }

func (p *Playback) handle(ev MediaEvent) {
	if p.media == nil {
		return
	}
	switch ev.Kind {
	case MediaTimeUpdate:
		p.position = finiteOrZero(p.media.CurrentTime())
	case MediaMetadataLoaded:
		p.duration = finiteOrZero(p.media.Duration())
	case MediaEnded:
		p.playing = false
		if p.OnEnded != nil {
			p.OnEnded()
		}
	}
}

// TogglePlay pauses when playing and plays otherwise. A play error is
// returned and leaves the tracker paused.
func (p *Playback) TogglePlay() error {
	if p.media == nil {
		return nil
	}
	if p.playing {
		p.media.Pause()
		p.playing = false
		return nil
	}
	if err := p.media.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.playing = true
	return nil
}

// Seek writes fraction × duration into the element. Ignored until the duration
// is known; the element reports the new position through a time update.
func (p *Playback) Seek(fraction float64) {
	if p.media == nil || !(p.duration > 0) || math.IsNaN(fraction) {
		return
	}
	p.media.SetCurrentTime(FractionToSeconds(fraction, p.duration))
}

// SetVolumeFraction stores fraction × 100 and writes fraction to the element.
func (p *Playback) SetVolumeFraction(fraction float64) {
	if math.IsNaN(fraction) {
		return
	}
	f := clamp01(fraction)
	p.volume = FractionToVolume(f)
	if p.media != nil {
		p.media.SetVolume(f)
	}
}

// Position returns the last reported playback position in seconds.
func (p *Playback) Position() float64 { return p.position }

// Duration returns the reported duration in seconds, 0 while unknown.
func (p *Playback) Duration() float64 { return p.duration }

// Playing reports whether playback is running.
func (p *Playback) Playing() bool { return p.playing }

// Volume returns the volume on the 0-100 scale.
func (p *Playback) Volume() float64 { return p.volume }

// Fraction returns position / duration, 0 while the duration is unknown.
func (p *Playback) Fraction() float64 {
	if !(p.duration > 0) {
		return 0
	}
	return clamp01(p.position / p.duration)
}

// Progress returns the playback progress as a percentage.
func (p *Playback) Progress() float64 {
	return p.Fraction() * 100
}

// --- Domain mapping ---

// FractionToSeconds maps a normalized value to a playback position.
func FractionToSeconds(fraction, duration float64) float64 {
	return clamp01(fraction) * duration
}

// FractionToVolume maps a normalized value to the 0-100 volume scale.
func FractionToVolume(fraction float64) float64 {
	return clamp01(fraction) * 100
}

// VolumeToFraction maps a 0-100 volume to a normalized value.
func VolumeToFraction(volume float64) float64 {
	return clamp01(volume / 100)
}

// FormatTime renders seconds as m:ss. Negative or non-finite input renders as
// 0:00.
func FormatTime(seconds float64) string {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	m := int(seconds / 60)
	s := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", m, s)
}

// HandleOffset returns how far a handle of the given size is pulled back from
// the progress point so it stays inside the track near the edges.
func HandleOffset(percent, size float64) float64 {
	switch {
	case percent > 95:
		return size
	case percent < 5:
		return 0
	default:
		return size / 2
	}
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
