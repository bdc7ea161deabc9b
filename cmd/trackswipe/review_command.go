package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/trackswipe"
	"github.com/phanxgames/trackswipe/notify"
	"github.com/phanxgames/trackswipe/sqlitestore"
)

const mediaTimeout = 30 * time.Second

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var (
		scriptPath    string
		screenshotDir string
		demo          bool
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Open the review window",
		Long: "Open the review window. Drag the card right to approve the current track, left to reject it.\n" +
			"Arrow keys review, Space toggles playback, R resets once every track is reviewed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cmd.ErrOrStderr())

			var runner *trackswipe.TestRunner
			if path := strings.TrimSpace(scriptPath); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if runner, err = trackswipe.LoadTestScript(data); err != nil {
					return err
				}
			}

			return ctx.withStore(cmd.Context(), func(store *sqlitestore.Store) error {
				if demo {
					if err := seedDemo(cmd.Context(), store); err != nil {
						return err
					}
				}

				reviewer := trackswipe.NewReviewer(store,
					trackswipe.WithLogger(logger),
					trackswipe.WithNotifier(notify.NewWebhook(cfg.Webhook.URL, cfg.WebhookTimeout())),
					trackswipe.WithNotifyTimeout(cfg.WebhookTimeout()),
				)
				runCtx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if err := reviewer.Load(runCtx); err != nil {
					return err
				}

				screen := trackswipe.NewScreen(runCtx, reviewer, trackswipe.ScreenConfig{
					Width:         cfg.Window.Width,
					Height:        cfg.Window.Height,
					Threshold:     cfg.Swipe.Threshold,
					Policy:        cfg.ZonePolicy(),
					Volume:        cfg.Player.Volume,
					Loader:        trackswipe.NewEbitenMediaLoader(mediaTimeout),
					Logger:        logger,
					ScreenshotDir: screenshotDir,
					Runner:        runner,
					Debug:         debug,
				})
				defer screen.Close()

				ebiten.SetWindowTitle(cfg.Window.Title)
				ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
				ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
				logger.Info("review window opened", "store", cfg.Store.Path)
				return ebiten.RunGame(screen)
			})
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay instead of waiting for a person")
	cmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")
	cmd.Flags().BoolVar(&demo, "demo", false, "Seed the demo playlist when the database is empty")
	cmd.Flags().BoolVar(&debug, "debug", false, "Draw hit areas and log pointer dispatch")
	return cmd
}

// seedDemo loads the demo playlist into an empty store.
func seedDemo(ctx context.Context, store *sqlitestore.Store) error {
	raws, err := store.FetchTracks(ctx)
	if err != nil {
		return err
	}
	if len(raws) > 0 {
		return nil
	}
	tracks, err := trackswipe.NormalizeTracks(trackswipe.DemoTracks())
	if err != nil {
		return err
	}
	return store.Upsert(ctx, tracks...)
}
