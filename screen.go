package trackswipe

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	defaultScreenWidth  = 480
	defaultScreenHeight = 800
	noticeSeconds       = 3
	noticeFadeSeconds   = 0.4
)

// ScreenConfig configures the review screen.
type ScreenConfig struct {
	Width, Height int
	Threshold     float64
	Policy        ZonePolicy
	Volume        float64 // 0-100; 0 selects DefaultVolume
	Loader        MediaLoader
	Logger        *slog.Logger
	Fonts         *Fonts
	ScreenshotDir string
	Runner        *TestRunner
	Debug         bool
}

type mediaResult struct {
	gen int
	src MediaSource
	err error
}

// Screen is the review window. It implements ebiten.Game.
type Screen struct {
	cfg      ScreenConfig
	ctx      context.Context
	reviewer *Reviewer
	logger   *slog.Logger
	fonts    *Fonts
	rng      *rand.Rand

	root     *Node
	card     *Node
	player   *Node
	playBtn  *Node
	progress *Node
	volume   *Node
	dislike  *Node
	like     *Node
	resetBtn *Node

	tracker       *PointerTracker
	gesture       *SwipeGesture
	cardView      *CardView
	progressScrub *Scrubber
	volumeScrub   *Scrubber
	playback      *Playback
	waveform      Waveform
	waveBuf       []WaveformBar

	media     MediaSource
	mediaGen  int
	mediaCh   chan mediaResult
	currentID string

	notice      *Notice
	lastNotice  *Notice
	noticeTicks int
	noticeAlpha float64
	noticeFade  *TweenGroup

	runner          *TestRunner
	screenshotQueue []string
	cardImg         *ebiten.Image
	debugOverlay    bool
}

// NewScreen builds the node tree and wires the gesture, scrubbers and
// playback. ctx bounds store and media calls.
func NewScreen(ctx context.Context, reviewer *Reviewer, cfg ScreenConfig) *Screen {
	if cfg.Width <= 0 {
		cfg.Width = defaultScreenWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultScreenHeight
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	s := &Screen{
		cfg:          cfg,
		ctx:          ctx,
		reviewer:     reviewer,
		logger:       cfg.Logger,
		fonts:        cfg.Fonts,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		playback:     NewPlayback(),
		mediaCh:      make(chan mediaResult, 4),
		runner:       cfg.Runner,
		debugOverlay: cfg.Debug,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if cfg.Volume > 0 {
		s.playback.SetVolumeFraction(VolumeToFraction(cfg.Volume))
	}
	s.build()
	s.tracker.SetDebugMode(cfg.Debug)
	s.syncSession()
	return s
}

// build lays out the node tree. The card is centered horizontally; every
// child rect is in its parent's frame.
func (s *Screen) build() {
	w := float64(s.cfg.Width)
	h := float64(s.cfg.Height)
	s.root = NewNode("root", Rect{Width: w, Height: h})

	cardW := min(400, w-40)
	s.card = NewNode("card", Rect{X: (w - cardW) / 2, Y: 90, Width: cardW, Height: 560})
	s.root.AddChild(s.card)

	inner := cardW - 48
	s.player = NewNode("player", Rect{X: 24, Y: 200, Width: inner, Height: 200})
	s.player.NoSwipe = true
	s.card.AddChild(s.player)

	s.playBtn = NewNode("play", Rect{X: inner/2 - 28, Y: 0, Width: 56, Height: 56})
	s.playBtn.HitShape = HitCircle{CenterX: 28, CenterY: 28, Radius: 28}
	s.player.AddChild(s.playBtn)

	s.progress = NewNode("progress", Rect{X: 0, Y: 104, Width: inner, Height: 24})
	s.player.AddChild(s.progress)

	s.volume = NewNode("volume", Rect{X: 32, Y: 168, Width: inner - 32, Height: 24})
	s.player.AddChild(s.volume)

	half := (inner - 16) / 2
	s.dislike = NewNode("dislike", Rect{X: 24, Y: 470, Width: half, Height: 56})
	s.like = NewNode("like", Rect{X: 24 + half + 16, Y: 470, Width: half, Height: 56})
	s.card.AddChild(s.dislike)
	s.card.AddChild(s.like)

	s.resetBtn = NewNode("reset", Rect{X: w/2 - 100, Y: 420, Width: 200, Height: 48})
	s.resetBtn.Visible = false
	s.root.AddChild(s.resetBtn)

	s.tracker = NewPointerTracker(s.root)

	s.gesture = NewSwipeGesture(SwipeConfig{
		Threshold:     s.cfg.Threshold,
		Policy:        s.cfg.Policy,
		Control:       s.player,
		OnCommitLeft:  func() { s.commit(DirectionLeft) },
		OnCommitRight: func() { s.commit(DirectionRight) },
	})
	s.gesture.BindPointer(s.card)
	s.cardView = NewCardView(s.card, s.gesture)

	s.progressScrub = NewScrubber(s.progress, s.playback.Seek)
	s.progressScrub.BindPointer(s.progress)
	s.volumeScrub = NewScrubber(s.volume, s.playback.SetVolumeFraction)
	s.volumeScrub.BindPointer(s.volume)

	s.playBtn.OnClick = func(PointerContext) { s.togglePlay() }
	s.dislike.OnClick = func(PointerContext) { s.review(DirectionLeft) }
	s.like.OnClick = func(PointerContext) { s.review(DirectionRight) }
	s.resetBtn.OnClick = func(PointerContext) { s.resetOrRetry() }
}

// Tracker returns the pointer tracker, for synthetic input.
func (s *Screen) Tracker() *PointerTracker { return s.tracker }

// Gesture returns the card swipe gesture.
func (s *Screen) Gesture() *SwipeGesture { return s.gesture }

// Playback returns the playback tracker.
func (s *Screen) Playback() *Playback { return s.playback }

// Layout implements ebiten.Game.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.cfg.Width, s.cfg.Height
}

// Update implements ebiten.Game.
func (s *Screen) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if s.runner != nil {
		if s.runner.Done() && len(s.screenshotQueue) == 0 && s.tracker.PendingInjections() == 0 {
			return ebiten.Termination
		}
		s.runner.step(s.tracker, s.Screenshot)
	}
	s.tracker.Poll()
	s.handleKeys()
	s.tick(dt)
	return nil
}

// tick advances everything except input polling.
func (s *Screen) tick(dt float64) {
	if s.reviewer.Poll() {
		s.syncSession()
	}
	s.drainMedia()
	if s.media != nil {
		s.media.Poll()
	}
	s.progressScrub.Sync(s.playback.Fraction())
	s.volumeScrub.Sync(VolumeToFraction(s.playback.Volume()))
	s.cardView.Update(dt)
	s.card.Interactable = !s.cardView.Flying()

	if s.noticeTicks > 0 {
		s.noticeTicks--
		if s.noticeTicks == 0 {
			s.noticeFade = TweenValue(nil, &s.noticeAlpha, 0, noticeFadeSeconds, ease.InQuad)
		}
	}
	if s.noticeFade != nil {
		s.noticeFade.Update(float32(dt))
		if s.noticeFade.Done {
			s.noticeFade = nil
			s.notice = nil
		}
	}
}

func (s *Screen) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.review(DirectionLeft)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.review(DirectionRight)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.togglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if s.resetBtn.Visible {
			s.resetOrRetry()
		}
	}
}

// reviewDisabled reports whether the review buttons are inactive: while a
// store call is pending, while the card is dragged or leaving, or when no
// track is shown.
func (s *Screen) reviewDisabled() bool {
	return s.reviewer.Session().Pending || s.gesture.Active() || s.cardView.Flying() || !s.card.Visible
}

// review handles the Like/Dislike buttons and arrow keys.
func (s *Screen) review(d Direction) {
	if s.reviewDisabled() {
		return
	}
	s.commit(d)
}

// commit submits the verdict and sends the card off screen. A rejected
// submission returns the card to rest.
func (s *Screen) commit(d Direction) {
	if err := s.reviewer.Submit(s.ctx, d); err != nil {
		s.logger.Warn("review not submitted", "direction", d.String(), "error", err)
		s.cardView.Restore()
		return
	}
	s.cardView.FlyOut(d)
}

func (s *Screen) resetOrRetry() {
	sess := s.reviewer.Session()
	var err error
	if sess.LoadErr != nil || !sess.Loaded {
		err = s.reviewer.Load(s.ctx)
	} else {
		err = s.reviewer.Reset(s.ctx)
	}
	if err != nil {
		s.logger.Warn("reset not started", "error", err)
	}
}

func (s *Screen) togglePlay() {
	if err := s.playback.TogglePlay(); err != nil {
		s.logger.Warn("playback failed", "error", err)
		s.showNotice(&Notice{Kind: NoticeError, Title: "Playback failed", Description: "Could not play this track."})
	}
}

func (s *Screen) showNotice(n *Notice) {
	s.notice = n
	s.noticeAlpha = 1
	s.noticeFade = nil
	s.noticeTicks = noticeSeconds * ebiten.TPS()
}

// syncSession reconciles the view with the reviewer session.
func (s *Screen) syncSession() {
	sess := s.reviewer.Session()
	if sess.Notice != nil && sess.Notice != s.lastNotice {
		s.lastNotice = sess.Notice
		s.showNotice(sess.Notice)
	}

	cur, ok := sess.Current()
	switch {
	case !ok:
		if s.currentID != "" {
			s.currentID = ""
			s.loadMedia("")
		}
	case cur.ID != s.currentID:
		s.currentID = cur.ID
		s.cardView.Present()
		s.waveform = NewWaveform(s.rng)
		s.loadMedia(cur.MediaURL)
	case s.cardView.Flying():
		// The review failed and the track stays.
		s.cardView.Restore()
	}
	s.card.Visible = ok
	s.resetBtn.Visible = sess.Complete() || sess.LoadErr != nil
}

// loadMedia replaces the attached media with the source at url, loaded in
// the background. An empty url only detaches.
func (s *Screen) loadMedia(url string) {
	s.playback.Detach()
	if s.media != nil {
		if err := s.media.Close(); err != nil {
			s.logger.Debug("close media", "error", err)
		}
		s.media = nil
	}
	s.mediaGen++
	if s.cfg.Loader == nil || url == "" {
		return
	}
	gen := s.mediaGen
	loader := s.cfg.Loader
	ctx := s.ctx
	go func() {
		src, err := loader.Load(ctx, url)
		s.mediaCh <- mediaResult{gen: gen, src: src, err: err}
	}()
}

// drainMedia attaches finished loads for the current track and closes stale
// ones.
func (s *Screen) drainMedia() {
	for {
		select {
		case r := <-s.mediaCh:
			if r.gen != s.mediaGen {
				if r.src != nil {
					_ = r.src.Close()
				}
				continue
			}
			if r.err != nil {
				s.logger.Warn("load media failed", "track_id", s.currentID, "error", r.err)
				s.showNotice(&Notice{Kind: NoticeError, Title: "Audio unavailable", Description: "This track could not be loaded."})
				continue
			}
			s.media = r.src
			s.playback.Attach(r.src)
		default:
			return
		}
	}
}

// Close detaches and releases the current media.
func (s *Screen) Close() {
	s.loadMedia("")
}
