package generator

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/goaux/stacktrace/v2"
	"github.com/takumakei/gen-common/execpipe"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Use     string
	Short   string
	Long    string
	Version string

	DefaultDir       string
	DefaultFormatter execpipe.Formatter
	DefaultLogLevel  string
}

// Settings is the content of the file given by --config.
//
//	dir: web/src/common
//	only: [QueryOption, IResponseDto]
//	format: true
//	formatter:
//	  name: prettier
//	  args: [--stdin-filepath, "{file}"]
type Settings struct {
	Dir       string              `yaml:"dir"`
	Only      []string            `yaml:"only"`
	Format    bool                `yaml:"format"`
	Formatter *execpipe.Formatter `yaml:"formatter"`
}

// LoadSettings reads a YAML settings file. An empty file yields zero Settings.
func LoadSettings(filename string) (*Settings, error) {
	f, err := stacktrace.Trace2(os.Open(filename))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSettings(f)
}

func readSettings(r io.Reader) (*Settings, error) {
	s := new(Settings)
	dec := yaml.NewDecoder(bufio.NewReader(r))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return s, nil
}
