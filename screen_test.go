package trackswipe

import (
	"context"
	"errors"
	"math"
	"testing"
)

const frameDT = 1.0 / 60

func newTestScreenWithStore(t *testing.T, store Store) *Screen {
	t.Helper()
	r := loadedReviewer(t, store)
	s := NewScreen(context.Background(), r, ScreenConfig{Logger: discardLogger()})
	t.Cleanup(s.Close)
	return s
}

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	return newTestScreenWithStore(t, newFakeStore())
}

// settle waits for background store calls and runs one tick.
func settle(s *Screen) {
	s.reviewer.Wait()
	s.tick(frameDT)
}

func click(s *Screen, n *Node) {
	wb := n.WorldBounds()
	x, y := wb.X+wb.Width/2, wb.Y+wb.Height/2
	s.tracker.Update(0, x, y, true)
	s.tracker.Update(0, x, y, false)
}

func currentID(s *Screen) string {
	cur, _ := s.reviewer.Session().Current()
	return cur.ID
}

func TestScreenLayoutDefaults(t *testing.T) {
	s := newTestScreen(t)
	w, h := s.Layout(1000, 1000)
	if w != defaultScreenWidth || h != defaultScreenHeight {
		t.Errorf("Layout = %dx%d, want %dx%d", w, h, defaultScreenWidth, defaultScreenHeight)
	}
	if !s.card.Visible || s.resetBtn.Visible {
		t.Error("loaded screen should show the card and hide reset")
	}
	if s.currentID != "1" {
		t.Errorf("currentID = %q, want 1", s.currentID)
	}
	if s.Playback().Volume() != DefaultVolume {
		t.Errorf("Volume = %v, want %v", s.Playback().Volume(), DefaultVolume)
	}
}

func TestScreenSwipeRightApproves(t *testing.T) {
	s := newTestScreen(t)
	cb := s.card.WorldBounds()
	y := cb.Y + 60

	s.tracker.Update(0, cb.X+200, y, true)
	if !s.Gesture().Active() {
		t.Fatal("press on the card header should start a swipe")
	}
	s.tracker.Update(0, cb.X+360, y, true)
	s.tick(frameDT)
	if s.cardView.Offset() != 160 {
		t.Errorf("card offset = %v, want 160", s.cardView.Offset())
	}
	s.tracker.Update(0, cb.X+360, y, false)
	if !s.cardView.Flying() {
		t.Error("committed card should fly out")
	}

	settle(s)
	if currentID(s) != "2" || s.currentID != "2" {
		t.Errorf("current = %q/%q, want 2", currentID(s), s.currentID)
	}
	if s.cardView.Flying() || s.cardView.Offset() != 0 {
		t.Error("next track should be presented at rest")
	}
	if s.notice == nil || s.notice.Title != "Track Approved!" {
		t.Errorf("notice = %+v", s.notice)
	}
}

func TestScreenShortSwipeSnapsBack(t *testing.T) {
	s := newTestScreen(t)
	cb := s.card.WorldBounds()
	y := cb.Y + 60
	s.tracker.Update(0, cb.X+200, y, true)
	s.tracker.Update(0, cb.X+150, y, true)
	s.tracker.Update(0, cb.X+150, y, false)
	for range 60 {
		s.tick(frameDT)
	}
	if !s.cardView.Settled() || math.Abs(s.cardView.Offset()) > 0.5 {
		t.Errorf("card offset = %v, want settled at 0", s.cardView.Offset())
	}
	if s.reviewer.Session().Pending || currentID(s) != "1" {
		t.Error("short swipe must not submit a review")
	}
}

func TestScreenPlayerDragDoesNotSwipe(t *testing.T) {
	s := newTestScreen(t)
	pb := s.progress.WorldBounds()
	y := pb.Y + pb.Height/2

	s.tracker.Update(0, pb.X+10, y, true)
	s.tracker.Update(0, pb.X+pb.Width+200, y, true)
	if s.Gesture().Active() {
		t.Error("dragging the progress bar must not move the card")
	}
	if !s.progressScrub.Active() {
		t.Error("progress scrubber should be dragging")
	}
	s.tracker.Update(0, pb.X+pb.Width+200, y, false)
	if s.reviewer.Session().Pending {
		t.Error("no review expected")
	}
}

func TestScreenVolumeScrub(t *testing.T) {
	s := newTestScreen(t)
	vb := s.volume.WorldBounds()
	y := vb.Y + vb.Height/2
	s.tracker.Update(0, vb.X+vb.Width/4, y, true)
	s.tracker.Update(0, vb.X+vb.Width/4, y, false)
	if got := s.Playback().Volume(); got != 25 {
		t.Errorf("Volume = %v, want 25", got)
	}
	s.tick(frameDT)
	if got := s.volumeScrub.Fraction(); got != 0.25 {
		t.Errorf("volume fraction = %v, want 0.25", got)
	}
}

func TestScreenButtonsReviewAndComplete(t *testing.T) {
	s := newTestScreen(t)

	click(s, s.like)
	settle(s)
	click(s, s.dislike)
	settle(s)
	if currentID(s) != "3" {
		t.Fatalf("current = %q, want 3", currentID(s))
	}
	click(s, s.like)
	settle(s)

	if !s.reviewer.Session().Complete() {
		t.Fatal("session should be complete")
	}
	if s.card.Visible || !s.resetBtn.Visible {
		t.Error("complete screen should hide the card and show reset")
	}

	click(s, s.resetBtn)
	settle(s)
	if s.reviewer.Session().Complete() || !s.card.Visible || s.resetBtn.Visible {
		t.Error("reset should bring the card back")
	}
	if currentID(s) != "1" {
		t.Errorf("current after reset = %q, want 1", currentID(s))
	}
}

func TestScreenButtonsDisabledWhilePending(t *testing.T) {
	store := newFakeStore()
	s := newTestScreenWithStore(t, store)
	store.gate = make(chan struct{})

	click(s, s.like)
	click(s, s.dislike)
	close(store.gate)
	settle(s)
	if len(store.sets) != 1 {
		t.Errorf("store writes = %v, want exactly 1", store.sets)
	}
}

func TestScreenFailedReviewRestoresCard(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("write failed")
	s := newTestScreenWithStore(t, store)

	s.commit(DirectionLeft)
	if !s.cardView.Flying() {
		t.Fatal("card should fly out optimistically")
	}
	settle(s)
	if s.cardView.Flying() {
		t.Error("failed review should restore the card")
	}
	if currentID(s) != "1" {
		t.Errorf("current = %q, want 1", currentID(s))
	}
	if s.notice == nil || s.notice.Kind != NoticeError {
		t.Errorf("notice = %+v, want error", s.notice)
	}
}

func TestScreenLoadFailureShowsRetry(t *testing.T) {
	store := newFakeStore()
	store.fetchErr = errors.New("offline")
	s := newTestScreenWithStore(t, store)
	if s.card.Visible || !s.resetBtn.Visible {
		t.Error("failed load should show retry")
	}

	store.mu.Lock()
	store.fetchErr = nil
	store.mu.Unlock()
	click(s, s.resetBtn)
	settle(s)
	if !s.card.Visible || currentID(s) != "1" {
		t.Error("retry should load the tracks")
	}
}

func TestScreenNoticeFadesOut(t *testing.T) {
	s := newTestScreen(t)
	s.showNotice(&Notice{Title: "x"})
	for range s.noticeTicks {
		s.tick(frameDT)
	}
	if s.notice == nil || s.noticeAlpha != 1 {
		t.Fatalf("notice = %v alpha = %v, want shown at full alpha when the fade starts", s.notice, s.noticeAlpha)
	}

	for range 6 {
		s.tick(frameDT)
	}
	if s.noticeAlpha <= 0 || s.noticeAlpha >= 1 {
		t.Errorf("alpha mid-fade = %v, want between 0 and 1", s.noticeAlpha)
	}

	for range int(noticeFadeSeconds/frameDT) + 10 {
		s.tick(frameDT)
	}
	if s.notice != nil {
		t.Error("notice should be gone after the fade")
	}
}

func TestScreenNewNoticeCancelsFade(t *testing.T) {
	s := newTestScreen(t)
	s.showNotice(&Notice{Title: "old"})
	for range s.noticeTicks + 6 {
		s.tick(frameDT)
	}
	fresh := &Notice{Title: "new"}
	s.showNotice(fresh)
	if s.notice != fresh || s.noticeAlpha != 1 || s.noticeFade != nil {
		t.Errorf("notice = %v alpha = %v fading = %v, want the new notice at full alpha", s.notice, s.noticeAlpha, s.noticeFade != nil)
	}
}

type fakeLoader struct {
	media *fakeSource
	err   error
}

type fakeSource struct {
	fakeMedia
	closed bool
}

func (f *fakeSource) Poll()        {}
func (f *fakeSource) Close() error { f.closed = true; return nil }

func (l *fakeLoader) Load(ctx context.Context, url string) (MediaSource, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.media, nil
}

func TestScreenLoadsMediaForCurrentTrack(t *testing.T) {
	src := &fakeSource{}
	r := loadedReviewer(t, newFakeStore())
	s := NewScreen(context.Background(), r, ScreenConfig{
		Logger: discardLogger(),
		Loader: &fakeLoader{media: src},
	})
	defer s.Close()

	// The load runs in a goroutine; the result is picked up by a tick.
	res := <-s.mediaCh
	s.mediaCh <- res
	s.tick(frameDT)
	if !s.Playback().Attached() {
		t.Fatal("media should be attached")
	}
	src.loadMetadata(100)
	click(s, s.playBtn)
	if !s.Playback().Playing() || !src.playing {
		t.Error("play button should start playback")
	}

	s.Close()
	if !src.closed || s.Playback().Attached() {
		t.Error("Close should release the media")
	}
}

func TestScreenStaleMediaDiscarded(t *testing.T) {
	stale := &fakeSource{}
	r := loadedReviewer(t, newFakeStore())
	s := NewScreen(context.Background(), r, ScreenConfig{Logger: discardLogger()})
	defer s.Close()

	s.mediaCh <- mediaResult{gen: s.mediaGen - 1, src: stale}
	s.tick(frameDT)
	if !stale.closed || s.Playback().Attached() {
		t.Error("stale media should be closed and not attached")
	}
}
