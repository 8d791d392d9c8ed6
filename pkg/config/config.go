package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/yinyajiang/apod-gallery/pkg/ies"
)

// DefaultFiles are probed, in order, when no file is named.
var DefaultFiles = []string{"config.toml", "config.json", "conf.json"}

var ErrUnsupportedFormat = errors.New("unsupported config format")

type ConfigSt struct {
	DataURL      string       `toml:"data_url" json:"data_url"`
	OutDir       string       `toml:"out_dir" json:"out_dir"`
	Mode         string       `toml:"mode" json:"mode"`
	Start        string       `toml:"start" json:"start"`
	IncludeVideo *bool        `toml:"include_video" json:"include_video"`
	OldestFirst  bool         `toml:"oldest_first" json:"oldest_first"`
	Proxy        string       `toml:"proxy" json:"proxy"`
	Timeout      Duration     `toml:"timeout" json:"timeout"`
	Verbose      bool         `toml:"verbose" json:"verbose"`
	Tokens       ies.IETokens `toml:"tokens" json:"tokens"`
}

// Duration reads "30s"-style strings from either format.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads file, or the first of DefaultFiles that exists. No file at all
// yields an empty config.
func Load(file string) (ConfigSt, error) {
	if file != "" {
		return readFile(file)
	}
	for _, f := range DefaultFiles {
		if fileutil.IsExist(f) {
			return readFile(f)
		}
	}
	return ConfigSt{}, nil
}

func readFile(file string) (cfg ConfigSt, err error) {
	by, err := os.ReadFile(file)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		err = toml.Unmarshal(by, &cfg)
	case ".json":
		err = json.Unmarshal(by, &cfg)
	default:
		return cfg, errors.Wrap(ErrUnsupportedFormat, file)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "decode %s", file)
	}
	return cfg, nil
}
