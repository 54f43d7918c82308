package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
)

// DefaultDir is the common directory of the consuming project, relative to
// the working directory.
const DefaultDir = "src/common"

// ModelsDir is where the artifacts live below the common directory.
const ModelsDir = "models"

const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

//go:embed templates/*.ts
var templates embed.FS

// Artifact is one generated TypeScript file.
type Artifact struct {
	// Name identifies the artifact on the command line, e.g. "FindResult".
	Name string

	// Path is slash separated and relative to the common directory.
	Path string

	// Content is written verbatim.
	Content []byte
}

var artifacts = []Artifact{
	mustLoad("QueryOption"),
	mustLoad("FindResult"),
	mustLoad("IResponseDto"),
}

func mustLoad(name string) Artifact {
	data, err := templates.ReadFile("templates/" + name + ".ts")
	if err != nil {
		panic(err)
	}
	return Artifact{
		Name:    name,
		Path:    path.Join(ModelsDir, name+".ts"),
		Content: data,
	}
}

// Artifacts returns every artifact in generation order.
func Artifacts() []Artifact {
	list := make([]Artifact, len(artifacts))
	for i, a := range artifacts {
		list[i] = a
		list[i].Content = bytes.Clone(a.Content)
	}
	return list
}

// Lookup finds an artifact by name.
func Lookup(name string) (Artifact, bool) {
	for _, a := range artifacts {
		if a.Name == name {
			a.Content = bytes.Clone(a.Content)
			return a, true
		}
	}
	return Artifact{}, false
}

// Names lists the artifact names in generation order.
func Names() []string {
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	return names
}

var ErrUnknownArtifact = errors.New("unknown artifact")

// Select returns the named artifacts in generation order, or all of them when
// names is empty.
func Select(names []string) ([]Artifact, error) {
	if len(names) == 0 {
		return Artifacts(), nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownArtifact, name, Names())
		}
		want[name] = true
	}
	var list []Artifact
	for _, a := range Artifacts() {
		if want[a.Name] {
			list = append(list, a)
		}
	}
	return list, nil
}
