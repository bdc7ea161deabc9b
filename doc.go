// Package trackswipe is a swipe-to-review screen for audio tracks, built on
// [Ebitengine].
//
// A reviewer sees one track at a time on a card. Dragging the card right past
// the swipe threshold approves the track; dragging it left rejects it. The
// card carries an audio player with a progress bar and a volume bar, both of
// which can be scrubbed by pointer without moving the card.
//
// # Quick start
//
//	store := trackswipe.NewMemoryStore(trackswipe.DemoTracks()...)
//	reviewer := trackswipe.NewReviewer(store)
//	_ = reviewer.Load(ctx)
//
//	screen := trackswipe.NewScreen(ctx, reviewer, trackswipe.ScreenConfig{
//		Loader: trackswipe.NewEbitenMediaLoader(30 * time.Second),
//	})
//	defer screen.Close()
//	ebiten.RunGame(screen)
//
// # Pointer tracking
//
// Every interactive region is a [Node]. Nodes form a tree whose rects are in
// their parent's frame. A [PointerTracker] hit tests the tree in painter order
// and dispatches down, move, up, click, enter and leave events to node
// callbacks. Down, move and up bubble from the hit node to its ancestors; once
// a pointer is pressed its moves and release stay captured by the node it
// pressed on.
//
// Mark a subtree with [Node.NoSwipe] to exclude it from card swipes. Presses
// that land inside it still reach its own callbacks.
//
// # Swipe gesture
//
// [SwipeGesture] turns horizontal drags into approve and reject verdicts:
//
//	g := trackswipe.NewSwipeGesture(trackswipe.SwipeConfig{
//		OnCommitLeft:  reject,
//		OnCommitRight: approve,
//		Control:       playerNode,
//	})
//	g.BindPointer(cardNode)
//
// The offset has to exceed [DefaultSwipeThreshold] in magnitude to commit.
// [SwipeIntensity] and [ClassifyDirection] drive the overlay feedback. With
// [PolicyAboveControl] only presses above the control's vertical midpoint can
// start a swipe.
//
// # Scrubbing
//
// [Scrubber] maps pointer x on a horizontal track to a fraction in [0,1] and
// reports it to a change callback. It is used for both seeking and volume.
//
// # Reviews
//
// [Reviewer] owns the [Session], runs [Store] calls off the game loop and
// applies their outcomes on [Reviewer.Poll]. Approvals are announced through
// an optional [Notifier]; notification failures never affect the review.
//
// # Debug mode
//
// [PointerTracker.SetDebugMode] logs every dispatched pointer event and
// gesture phase to stderr and panics on use of disposed nodes.
//
// [Ebitengine]: https://ebitengine.org
package trackswipe
