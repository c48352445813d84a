package app

import (
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file side of chart configuration. Explicit command
// line flags win over file values.
type Config struct {
	Chart      string `yaml:"chart"`
	Workers    int    `yaml:"workers"`
	Exhaustive bool   `yaml:"exhaustive"`
	Buffer     int    `yaml:"buffer"`
}

func ParseConfig(data []byte) (*Config, error) {
	config := new(Config)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return config, nil
}

func ReadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", filename)
	}
	return ParseConfig(data)
}

// resolveConfig folds the optional YAML file and the explicit command
// line flags into the effective options: defaults, then file values,
// then whichever flags were set on the command line.
func resolveConfig(cmd *commander.Command) (*Config, error) {
	resolved := &Config{Chart: "logsum"}
	if len(confFile) > 0 {
		fileConfig, err := ReadConfig(confFile)
		if err != nil {
			return nil, err
		}
		if len(fileConfig.Chart) > 0 {
			resolved.Chart = fileConfig.Chart
		}
		resolved.Workers = fileConfig.Workers
		resolved.Exhaustive = fileConfig.Exhaustive
		resolved.Buffer = fileConfig.Buffer
	}
	cmd.Flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "viterbi":
			if viterbi {
				resolved.Chart = "viterbi"
			} else {
				resolved.Chart = "logsum"
			}
		case "exhaustive":
			resolved.Exhaustive = exhaustive
		case "buffer":
			resolved.Buffer = bufferSize
		}
	})
	return resolved, nil
}
