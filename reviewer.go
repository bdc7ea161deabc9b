package trackswipe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultNotifyTimeout = 10 * time.Second

// ReviewEvent is published after every completed review.
type ReviewEvent struct {
	TrackID string
	State   ReviewState
	Err     error
}

// ReviewSink receives review events, e.g. an ECS bridge.
type ReviewSink interface {
	EmitReview(event ReviewEvent)
}

// Reviewer drives a Session against a Store. Store calls run in goroutines and
// their outcomes are folded into the session by Poll on the UI goroutine, so
// the session itself is never shared.
type Reviewer struct {
	store         Store
	notifier      Notifier
	logger        *slog.Logger
	sink          ReviewSink
	notifyTimeout time.Duration

	session Session
	results chan Outcome
	wg      sync.WaitGroup
}

// ReviewerOption configures a Reviewer.
type ReviewerOption func(*Reviewer)

// WithNotifier sets the approval notifier.
func WithNotifier(n Notifier) ReviewerOption {
	return func(r *Reviewer) { r.notifier = n }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) ReviewerOption {
	return func(r *Reviewer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReviewSink sets a sink that receives every completed review.
func WithReviewSink(s ReviewSink) ReviewerOption {
	return func(r *Reviewer) { r.sink = s }
}

// WithNotifyTimeout bounds each notifier call.
func WithNotifyTimeout(d time.Duration) ReviewerOption {
	return func(r *Reviewer) {
		if d > 0 {
			r.notifyTimeout = d
		}
	}
}

// NewReviewer creates a reviewer with an empty, unloaded session.
func NewReviewer(store Store, opts ...ReviewerOption) *Reviewer {
	r := &Reviewer{
		store:         store,
		logger:        slog.Default(),
		notifyTimeout: defaultNotifyTimeout,
		results:       make(chan Outcome, 4),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session returns the current session.
func (r *Reviewer) Session() Session {
	return r.session
}

// Load fetches the track list in the background.
func (r *Reviewer) Load(ctx context.Context) error {
	if r.session.Pending {
		return ErrReviewPending
	}
	r.session = r.session.Begin()
	r.goStore(func() Outcome {
		tracks, err := r.fetch(ctx)
		return Outcome{Kind: OutcomeLoaded, Tracks: tracks, Err: err}
	})
	return nil
}

// Approve submits the current track as approved.
func (r *Reviewer) Approve(ctx context.Context) error {
	return r.Submit(ctx, DirectionRight)
}

// Reject submits the current track as rejected.
func (r *Reviewer) Reject(ctx context.Context) error {
	return r.Submit(ctx, DirectionLeft)
}

// Submit persists the verdict for the current track in the background. The
// track only advances once the store confirms; an approval then notifies the
// notifier in its own goroutine.
func (r *Reviewer) Submit(ctx context.Context, d Direction) error {
	state := StateForDirection(d)
	if state == ReviewUnset {
		return fmt.Errorf("submit review: no verdict for direction %s", d)
	}
	if r.session.Pending {
		return ErrReviewPending
	}
	track, ok := r.session.Current()
	if !ok {
		return ErrNoTrack
	}
	r.session = r.session.Begin()
	id := track.ID
	r.goStore(func() Outcome {
		err := r.store.SetReviewState(ctx, id, state)
		if err != nil {
			err = fmt.Errorf("set review state: %w", err)
		} else if state == ReviewApproved {
			r.notifyApproved(context.WithoutCancel(ctx), id)
		}
		return Outcome{Kind: OutcomeReviewed, TrackID: id, State: state, Err: err}
	})
	return nil
}

// Reset clears every verdict and reloads the list.
func (r *Reviewer) Reset(ctx context.Context) error {
	if r.session.Pending {
		return ErrReviewPending
	}
	r.session = r.session.Begin()
	r.goStore(func() Outcome {
		if err := r.store.ResetReviews(ctx); err != nil {
			return Outcome{Kind: OutcomeReset, Err: fmt.Errorf("reset reviews: %w", err)}
		}
		tracks, err := r.fetch(ctx)
		return Outcome{Kind: OutcomeReset, Tracks: tracks, Err: err}
	})
	return nil
}

// Poll folds every finished operation into the session. Call from the UI
// goroutine once per tick. Reports whether the session changed.
func (r *Reviewer) Poll() bool {
	changed := false
	for {
		select {
		case o := <-r.results:
			r.apply(o)
			changed = true
		default:
			return changed
		}
	}
}

// Wait blocks until every background call has finished, including
// notifications, then polls.
func (r *Reviewer) Wait() bool {
	r.wg.Wait()
	return r.Poll()
}

func (r *Reviewer) apply(o Outcome) {
	r.session = r.session.Apply(o)
	switch o.Kind {
	case OutcomeLoaded:
		if o.Err != nil {
			r.logger.Error("load tracks failed", "error", o.Err)
			return
		}
		reviewed, remaining := r.session.Counts()
		r.logger.Info("tracks loaded", "reviewed", reviewed, "remaining", remaining)
	case OutcomeReviewed:
		if o.Err != nil {
			r.logger.Error("review failed", "track_id", o.TrackID, "state", o.State.String(), "error", o.Err)
		} else {
			r.logger.Info("track reviewed", "track_id", o.TrackID, "state", o.State.String())
		}
		if r.sink != nil {
			r.sink.EmitReview(ReviewEvent{TrackID: o.TrackID, State: o.State, Err: o.Err})
		}
	case OutcomeReset:
		if o.Err != nil {
			r.logger.Error("reset reviews failed", "error", o.Err)
			return
		}
		r.logger.Info("reviews reset", "tracks", len(r.session.Tracks))
	}
}

// goStore runs fn in a goroutine and queues its outcome.
func (r *Reviewer) goStore(fn func() Outcome) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.results <- fn()
	}()
}

func (r *Reviewer) fetch(ctx context.Context) ([]Track, error) {
	raws, err := r.store.FetchTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks: %w", err)
	}
	tracks, err := NormalizeTracks(raws)
	if err != nil {
		r.logger.Warn("skipped malformed track records", "error", err)
	}
	return tracks, nil
}

// notifyApproved starts the notifier call. Its error is logged and dropped.
func (r *Reviewer) notifyApproved(ctx context.Context, id string) {
	if r.notifier == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, r.notifyTimeout)
		defer cancel()
		if err := r.notifier.NotifyApproved(ctx, id); err != nil {
			r.logger.Warn("approval notification failed", "track_id", id, "error", err)
			return
		}
		r.logger.Debug("approval notification sent", "track_id", id)
	}()
}
