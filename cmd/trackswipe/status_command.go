package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phanxgames/trackswipe"
	"github.com/phanxgames/trackswipe/sqlitestore"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List tracks and their review verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *sqlitestore.Store) error {
				raws, err := store.FetchTracks(cmd.Context())
				if err != nil {
					return err
				}
				tracks, err := trackswipe.NormalizeTracks(raws)
				if err != nil && !errors.Is(err, trackswipe.ErrInvalidTrack) {
					return err
				}
				out := cmd.OutOrStdout()
				if err != nil {
					ctx.logger(cmd.ErrOrStderr()).Warn("skipped invalid tracks", "error", err)
				}
				renderStatus(out, tracks, shouldColorize(out))
				return nil
			})
		},
	}
}

func renderStatus(out io.Writer, tracks []trackswipe.Track, colorize bool) {
	if len(tracks) == 0 {
		fmt.Fprintln(out, "No tracks. Add some with 'trackswipe import'.")
		return
	}
	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.ID,
			t.Title,
			stateLabel(t.State, colorize),
		})
	}
	s := trackswipe.Session{Tracks: tracks, Loaded: true}
	reviewed, remaining := s.Counts()
	footer := []string{"", "", "Reviewed / remaining", fmt.Sprintf("%d / %d", reviewed, remaining)}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "ID", "Title", "Verdict"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		footer,
	))
}

func stateLabel(state trackswipe.ReviewState, colorize bool) string {
	label, color := "pending", ansiYellow
	switch state {
	case trackswipe.ReviewApproved:
		label, color = "approved", ansiGreen
	case trackswipe.ReviewRejected:
		label, color = "rejected", ansiRed
	}
	if !colorize {
		return label
	}
	return color + label + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
