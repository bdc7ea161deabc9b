// Command trackswipe opens the swipe-to-review window over a SQLite playlist
// and manages that playlist from the command line.
//
//	trackswipe import playlist.yaml   # add or update tracks
//	trackswipe review                 # open the review window
//	trackswipe status                 # list tracks and verdicts
//	trackswipe reset                  # clear every verdict
//	trackswipe config init            # write a sample config
package main
