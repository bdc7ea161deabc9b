package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/trackswipe"
	"github.com/phanxgames/trackswipe/sqlitestore"
)

// playlistFile is the document form of an import. A bare list of records is
// accepted too.
type playlistFile struct {
	Tracks []map[string]any `yaml:"tracks"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Add or update tracks from a JSON or YAML playlist",
		Long: "Add or update tracks from a JSON or YAML playlist. Use - to read stdin.\n" +
			"Records without an id are given a random one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tracks []trackswipe.Track
				err    error
			)
			switch {
			case demo:
				tracks, err = trackswipe.NormalizeTracks(trackswipe.DemoTracks())
			case len(args) == 1:
				tracks, err = readPlaylist(cmd.InOrStdin(), args[0])
			default:
				return errors.New("import needs a playlist file or --demo")
			}
			if err != nil {
				return err
			}

			return ctx.withStore(cmd.Context(), func(store *sqlitestore.Store) error {
				if err := store.Upsert(cmd.Context(), tracks...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d track(s)\n", len(tracks))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Import the built-in demo playlist")
	return cmd
}

func readPlaylist(stdin io.Reader, path string) ([]trackswipe.Track, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return parsePlaylist(data)
}

// parsePlaylist decodes a playlist. JSON is valid YAML, so one decoder serves
// both formats.
func parsePlaylist(data []byte) ([]trackswipe.Track, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse playlist: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, errors.New("parse playlist: empty document")
	}

	var records []map[string]any
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&records); err != nil {
			return nil, fmt.Errorf("parse playlist: %w", err)
		}
	case yaml.MappingNode:
		var doc playlistFile
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse playlist: %w", err)
		}
		records = doc.Tracks
	default:
		return nil, errors.New("parse playlist: want a list of tracks or a tracks: key")
	}

	tracks := make([]trackswipe.Track, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			return nil, fmt.Errorf("track %d: empty record", i)
		}
		raw := trackswipe.RawTrack(rec)
		t, err := trackswipe.NormalizeTrack(raw)
		if errors.Is(err, trackswipe.ErrInvalidTrack) {
			assignID(raw, uuid.NewString())
			t, err = trackswipe.NormalizeTrack(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

var idFolder = strings.NewReplacer("_", "", "-", "")

// assignID replaces any blank id field of raw with id.
func assignID(raw trackswipe.RawTrack, id string) {
	for k := range raw {
		switch idFolder.Replace(strings.ToLower(k)) {
		case "id", "songid", "trackid":
			delete(raw, k)
		}
	}
	raw["id"] = id
}
