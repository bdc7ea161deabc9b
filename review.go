package trackswipe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrTrackNotFound is returned when a review targets an unknown track id.
	ErrTrackNotFound = errors.New("track not found")
	// ErrSchemaMismatch is returned when a store's schema version is not the
	// one this build understands.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrReviewPending is returned when a load, review or reset is started
	// while another is still in flight.
	ErrReviewPending = errors.New("review operation already pending")
	// ErrNoTrack is returned when a review is submitted with nothing left to
	// review.
	ErrNoTrack = errors.New("no track to review")
	// ErrInvalidTrack is returned for store records that cannot be normalized.
	ErrInvalidTrack = errors.New("invalid track record")
)

// UntitledTrack is the title shown for records without one.
const UntitledTrack = "Untitled track"

// ReviewState is the review verdict of a track.
type ReviewState uint8

const (
	ReviewUnset    ReviewState = iota // not yet reviewed
	ReviewApproved                    // swiped right
	ReviewRejected                    // swiped left
)

// String returns the stored name of the state.
func (s ReviewState) String() string {
	switch s {
	case ReviewApproved:
		return "approved"
	case ReviewRejected:
		return "rejected"
	default:
		return "unset"
	}
}

// ParseReviewState maps a stored value to a state. Anything other than
// "approved" or "rejected" (case-insensitive), including "" and "NULL", is
// ReviewUnset.
func ParseReviewState(s string) ReviewState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return ReviewApproved
	case "rejected":
		return ReviewRejected
	default:
		return ReviewUnset
	}
}

// StateForDirection maps a committed swipe direction to a verdict.
func StateForDirection(d Direction) ReviewState {
	switch d {
	case DirectionRight:
		return ReviewApproved
	case DirectionLeft:
		return ReviewRejected
	default:
		return ReviewUnset
	}
}

// Track is the canonical reviewable record.
type Track struct {
	ID       string
	Title    string
	MediaURL string
	State    ReviewState
}

// Reviewed reports whether the track has a verdict.
func (t Track) Reviewed() bool {
	return t.State != ReviewUnset
}

// RawTrack is a loosely typed record as returned by a store. Keys are matched
// case-insensitively, ignoring '_' and '-'.
type RawTrack map[string]any

var (
	idKeys    = []string{"id", "songid", "trackid"}
	titleKeys = []string{"title", "name"}
	mediaKeys = []string{"mediaurl", "streamurl", "url", "src"}
	stateKeys = []string{"reviewstate", "state"}
	legacyKey = "approved"

	keyFolder = strings.NewReplacer("_", "", "-", "")
)

func foldKey(k string) string {
	return keyFolder.Replace(strings.ToLower(k))
}

// lookup returns the first present value for any of keys.
func (r RawTrack) lookup(keys ...string) (any, bool) {
	for _, want := range keys {
		for k, v := range r {
			if foldKey(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

// NormalizeTrack converts a raw store record into a Track. An explicit review
// state field is authoritative when present; otherwise a legacy boolean
// "approved" field (true, false or null) is honored.
func NormalizeTrack(raw RawTrack) (Track, error) {
	var t Track
	if v, ok := raw.lookup(idKeys...); ok {
		t.ID = scalarString(v)
	}
	if t.ID == "" {
		return Track{}, fmt.Errorf("%w: missing id", ErrInvalidTrack)
	}
	if v, ok := raw.lookup(titleKeys...); ok {
		t.Title = strings.TrimSpace(scalarString(v))
	}
	if t.Title == "" {
		t.Title = UntitledTrack
	}
	if v, ok := raw.lookup(mediaKeys...); ok {
		t.MediaURL = strings.TrimSpace(scalarString(v))
	}
	if v, ok := raw.lookup(stateKeys...); ok {
		t.State = stateValue(v)
	} else if v, ok := raw.lookup(legacyKey); ok {
		t.State = legacyApproved(v)
	}
	return t, nil
}

// NormalizeTracks normalizes every record, keeping store order. Records that
// fail are skipped and reported in the joined error.
func NormalizeTracks(raws []RawTrack) ([]Track, error) {
	tracks := make([]Track, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		t, err := NormalizeTrack(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, errors.Join(errs...)
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func stateValue(v any) ReviewState {
	switch x := v.(type) {
	case string:
		return ParseReviewState(x)
	case []byte:
		return ParseReviewState(string(x))
	case ReviewState:
		if x > ReviewRejected {
			return ReviewUnset
		}
		return x
	case bool:
		return legacyApproved(x)
	default:
		return ReviewUnset
	}
}

func legacyApproved(v any) ReviewState {
	switch x := v.(type) {
	case bool:
		if x {
			return ReviewApproved
		}
		return ReviewRejected
	case int64:
		return legacyApproved(x != 0)
	case int:
		return legacyApproved(x != 0)
	case float64:
		return legacyApproved(x != 0)
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return ReviewUnset
		}
		return legacyApproved(b)
	default:
		return ReviewUnset
	}
}

// --- Session ---

// NoticeKind classifies a toast notice.
type NoticeKind uint8

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeInfo
)

// Notice is a short user-facing message.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

// OutcomeKind identifies what an Outcome completes.
type OutcomeKind uint8

const (
	OutcomeLoaded OutcomeKind = iota
	OutcomeReviewed
	OutcomeReset
)

// Outcome is the result of one asynchronous store operation.
type Outcome struct {
	Kind    OutcomeKind
	TrackID string      // OutcomeReviewed
	State   ReviewState // OutcomeReviewed
	Tracks  []Track     // OutcomeLoaded, OutcomeReset
	Err     error
}

// Session is the review application state. It is a value: transitions return
// a new Session and never mutate the receiver's track slice.
type Session struct {
	Tracks  []Track
	Pending bool
	Loaded  bool
	LoadErr error
	Notice  *Notice
}

// Current returns the first unreviewed track in store order.
func (s Session) Current() (Track, bool) {
	for _, t := range s.Tracks {
		if !t.Reviewed() {
			return t, true
		}
	}
	return Track{}, false
}

// Complete reports whether the list loaded and nothing is left to review.
// A failed load is not complete.
func (s Session) Complete() bool {
	if !s.Loaded || s.LoadErr != nil {
		return false
	}
	_, ok := s.Current()
	return !ok
}

// Counts returns the number of reviewed and remaining tracks.
func (s Session) Counts() (reviewed, remaining int) {
	for _, t := range s.Tracks {
		if t.Reviewed() {
			reviewed++
		} else {
			remaining++
		}
	}
	return reviewed, remaining
}

// Loading reports whether an operation is in flight.
func (s Session) Loading() bool {
	return s.Pending
}

// Begin marks an operation as in flight.
func (s Session) Begin() Session {
	s.Pending = true
	return s
}

// Apply folds a completed operation into the session.
func (s Session) Apply(o Outcome) Session {
	s.Pending = false
	switch o.Kind {
	case OutcomeLoaded:
		if o.Err != nil {
			s.LoadErr = o.Err
			s.Notice = &Notice{Kind: NoticeError, Title: "Error", Description: "Failed to load tracks."}
			return s
		}
		s.Tracks = o.Tracks
		s.Loaded = true
		s.LoadErr = nil

	case OutcomeReviewed:
		if o.Err != nil {
			verb := "approve"
			if o.State == ReviewRejected {
				verb = "reject"
			}
			s.Notice = &Notice{
				Kind:        NoticeError,
				Title:       "Error",
				Description: "Failed to " + verb + " track. Please try again.",
			}
			return s
		}
		tracks := make([]Track, len(s.Tracks))
		copy(tracks, s.Tracks)
		for i := range tracks {
			if tracks[i].ID == o.TrackID {
				tracks[i].State = o.State
			}
		}
		s.Tracks = tracks
		title := "Track Approved!"
		if o.State == ReviewRejected {
			title = "Track Rejected"
		}
		s.Notice = &Notice{Kind: NoticeSuccess, Title: title, Description: "Moving to next track..."}

	case OutcomeReset:
		if o.Err != nil {
			s.Notice = &Notice{Kind: NoticeError, Title: "Error", Description: "Failed to reset reviews."}
			return s
		}
		s.Tracks = o.Tracks
		s.Loaded = true
		s.LoadErr = nil
		s.Notice = &Notice{Kind: NoticeInfo, Title: "Reviews Reset", Description: "All tracks are available for review again."}
	}
	return s
}

// --- Collaborators ---

// Store persists tracks and their verdicts.
type Store interface {
	FetchTracks(ctx context.Context) ([]RawTrack, error)
	SetReviewState(ctx context.Context, id string, state ReviewState) error
	ResetReviews(ctx context.Context) error
}

// Notifier is told about approvals. Its errors never affect the session.
type Notifier interface {
	NotifyApproved(ctx context.Context, id string) error
}
