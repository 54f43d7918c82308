package main

import (
	"context"
	_ "embed"

	"github.com/goaux/headline"
	"github.com/takumakei/gen-common/execpipe"
	"github.com/takumakei/gen-common/generator"
)

//go:embed usage.md
var usage string

// Populated at build-time via -ldflags.
var version = "dev"

func main() {
	generator.Main(context.Background(), generator.Config{
		Use:     "gen-common",
		Short:   headline.Get(usage),
		Long:    usage,
		Version: version,

		DefaultDir:       generator.DefaultDir,
		DefaultFormatter: execpipe.Prettier,
	})
}
