// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read entry → attach files → preformat → render → write.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/gaurav-prasanna/mfformat/core/format"
	"github.com/gaurav-prasanna/mfformat/core/links"
	"github.com/gaurav-prasanna/mfformat/core/output"
	"github.com/gaurav-prasanna/mfformat/core/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flag variables.
var (
	flagPhotos     []string
	flagVideos     []string
	flagAudios     []string
	flagAttach     []string
	flagJSON       bool
	flagOutputDir  string
	flagRelativeTo string
)

var convertCmd = &cobra.Command{
	Use:   "convert <entry.json|->",
	Short: "Convert a micropub JSON entry into site files",
	Long: `Convert reads a micropub JSON h-entry, attaches any media files, derives the
missing fields and writes the front matter document and media into the site
directory (or prints a JSON description with --json).

Examples:
  mfformat convert entry.json
  mfformat convert entry.json --photo holiday.jpg --output_dir ./site
  mfformat convert - --json < entry.json
  mfformat convert entry.json --relative_to https://example.com/`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Attachment flags.
	convertCmd.Flags().StringArrayVar(&flagPhotos, "photo", nil, "Attach a photo (repeatable)")
	convertCmd.Flags().StringArrayVar(&flagVideos, "video", nil, "Attach a video (repeatable)")
	convertCmd.Flags().StringArrayVar(&flagAudios, "audio", nil, "Attach an audio file (repeatable)")
	convertCmd.Flags().StringArrayVar(&flagAttach, "attach", nil, "Attach a file, media kind detected from its extension (repeatable)")

	// Output flags.
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON instead of writing files")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Site directory (default: config outputDir or current directory)")
	convertCmd.Flags().StringVar(&flagRelativeTo, "relative_to", "", "Base URL for absolute permalinks (overrides config)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	entry, err := readEntry(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := attachFiles(entry); err != nil {
		return err
	}

	formatter := format.New(appConfig.FormatOptions(), format.WithLogger(logger))

	ctx := context.Background()
	var result *core.Result
	if flagRelativeTo != "" {
		result, err = formatter.FormatAllRelativeTo(ctx, entry, flagRelativeTo)
	} else {
		result, err = formatter.FormatAll(ctx, entry)
	}
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if flagJSON {
		data, err := render.NewJSONRenderer().Render(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	outputDir := flagOutputDir
	if outputDir == "" {
		outputDir = appConfig.OutputDir
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	paths, err := writer.Write(result)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	logger.Info("Converted entry", zap.String("url", result.URL), zap.Int("files", len(paths)))
	return nil
}

// readEntry decodes a micropub JSON entry from a file, or stdin for "-".
func readEntry(name string, stdin io.Reader) (*core.Entry, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry: %w", err)
	}

	var entry core.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}
	return &entry, nil
}

// attachFiles loads the files named by the attachment flags into the entry.
func attachFiles(entry *core.Entry) error {
	named := map[core.MediaKind][]string{
		core.Photo: flagPhotos,
		core.Video: flagVideos,
		core.Audio: flagAudios,
	}
	for _, name := range flagAttach {
		kind, ok := links.MediaKindOf(name)
		if !ok {
			return fmt.Errorf("cannot detect media kind of %s, use --photo, --video or --audio", name)
		}
		named[kind] = append(named[kind], name)
	}

	for _, kind := range core.MediaKinds {
		for _, name := range named[kind] {
			data, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("reading attachment: %w", err)
			}
			if entry.Files == nil {
				entry.Files = make(map[core.MediaKind][]core.File)
			}
			entry.Files[kind] = append(entry.Files[kind], core.File{
				Filename: filepath.Base(name),
				Buffer:   data,
			})
		}
	}
	return nil
}
