package outline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/eds"
)

var ErrNoMatches = errors.Base("no files matched")

// Handler prints the flattened outline of every EDS file matching its
// patterns, one item per line.
type Handler struct {
	fs       afero.Fs
	root     string
	patterns []string
	out      io.Writer
}

func NewOutlineCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "outline [pattern...]",
		Short: "print the section names and statements of eds files",
		Long: "outline flattens each matching file into its section names and statements in document order.\n" +
			"Patterns are doublestar globs relative to --root; without arguments outline.patterns from the config is used.",
	}

	cmd.Flags().StringVar(&me.root, "root", ".", "directory the patterns are relative to")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.patterns = args
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	patterns := me.patterns
	if len(patterns) == 0 {
		patterns = config.FromContext(ctx).Outline.Patterns
	}

	root, err := filepath.Abs(me.root)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}
	base := afero.NewBasePathFs(me.fs, root)

	files, err := me.match(base, patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("%w: %v", ErrNoMatches, patterns)
	}

	var errs error
	for _, file := range files {
		if err := me.outline(ctx, base, file); err != nil {
			errs = multierr.Append(errs, errors.Errorf("%s: %w", file, err))
		}
	}
	return errs
}

func (me *Handler) match(base afero.Fs, patterns []string) ([]string, error) {
	fsys := afero.NewIOFS(base)

	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func (me *Handler) outline(ctx context.Context, base afero.Fs, file string) error {
	data, err := afero.ReadFile(base, file)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	doc, err := eds.Parse(ctx, string(data))
	if err != nil {
		return err
	}

	it := doc.Iter()
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		// editors expect 1-based lines and columns
		fmt.Fprintf(me.out, "%s:%d:%d\t%s\t%s\n", file, item.Range.StartPoint.Row+1, item.Range.StartPoint.Column+1, item.Kind, item.Text)
	}

	switch it.Halt() {
	case eds.HaltComplete:
	case eds.HaltDecode:
		return it.Err()
	default:
		zerolog.Ctx(ctx).Warn().Str("file", file).Str("halt", it.Halt().String()).Msg("outline left out section names or statements")
	}
	return nil
}
