package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goaux/stacktrace/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/takumakei/gen-common/execpipe"
)

// ProgressLine is printed once per run.
const ProgressLine = "Generate common"

// GenerateCommon writes every artifact below DefaultDir and reports progress
// on stdout.
func GenerateCommon() error {
	g := &Generator{
		Dir:    DefaultDir,
		Out:    os.Stdout,
		Logger: log.Logger.Level(zerolog.WarnLevel),
	}
	_, err := g.Run(context.Background())
	return err
}

// Generator writes the artifacts into a common directory.
//
// The zero value writes all artifacts below DefaultDir, discards the progress
// line and does not log.
type Generator struct {
	// Dir is the common directory. The artifacts go to Dir/models.
	Dir string

	// Only restricts the run to the named artifacts.
	Only []string

	// Formatter, if set, is applied to each artifact before it is written.
	Formatter *execpipe.Formatter

	// Out receives the progress line.
	Out io.Writer

	Logger zerolog.Logger
}

// Run creates the models directory and overwrites each selected artifact in
// it. It returns the paths written so far, which on error excludes the file
// that failed. Nothing is retried or rolled back.
func (g *Generator) Run(ctx context.Context) ([]string, error) {
	list, err := Select(g.Only)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(g.out(), ProgressLine)

	dir := filepath.Join(g.dir(), ModelsDir)
	if err := stacktrace.Trace(os.MkdirAll(dir, DirPerm)); err != nil {
		return nil, err
	}
	g.Logger.Debug().Str("dir", dir).Msg("models directory ready")

	written := make([]string, 0, len(list))
	for _, a := range list {
		name := filepath.Join(g.dir(), filepath.FromSlash(a.Path))
		data := a.Content
		if g.Formatter != nil {
			g.Logger.Debug().Str("file", name).Stringer("formatter", g.Formatter).Msg("formatting")
			if data, err = g.Formatter.Format(ctx, name, data); err != nil {
				return written, err
			}
		}
		if err := stacktrace.Trace(os.WriteFile(name, data, FilePerm)); err != nil {
			return written, err
		}
		g.Logger.Debug().Str("file", name).Int("bytes", len(data)).Msg("wrote")
		written = append(written, name)
	}
	g.Logger.Info().Int("files", len(written)).Str("dir", dir).Msg("generated")
	return written, nil
}

func (g *Generator) dir() string {
	if g.Dir == "" {
		return DefaultDir
	}
	return g.Dir
}

func (g *Generator) out() io.Writer {
	if g.Out == nil {
		return io.Discard
	}
	return g.Out
}
