package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

var ErrMissingFile = errors.New("bibliography file argument is required")

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	BaseDir string `long:"base-dir" env:"BIB_BASE_DIR" description:"Directory relative bibliography paths resolve against (default: program directory)"`
	Tables  string `long:"tables" env:"BIB_TABLES" description:"YAML file overriding the built-in normalization tables"`
	Indent  int    `long:"indent" env:"BIB_INDENT" default:"4" description:"Number of spaces used to indent the JSON output"`

	DBPath       string `long:"db" env:"BIB_DB" description:"SQLite file storing converted publications (optional)"`
	Listen       string `long:"listen" env:"BIB_LISTEN" description:"Serve the HTTP API on this address instead of converting a file (e.g. :8080)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the publication endpoints (optional)"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		File string `positional-arg-name:"FILE" description:"BibTeX file to convert"`
	} `positional-args:"yes"`
}

// Load parses command-line arguments and environment variables. It returns
// nil without an error when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] FILE"

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Indent < 0 {
		return nil, fmt.Errorf("indent must be non-negative, got %d", raw.Indent)
	}

	if raw.Args.File == "" && raw.Listen == "" {
		return nil, ErrMissingFile
	}

	file, err := resolvePath(raw.BaseDir, raw.Args.File)
	if err != nil {
		return nil, err
	}

	cfg := &Cfg{
		File:         file,
		BaseDir:      raw.BaseDir,
		TablesPath:   raw.Tables,
		Indent:       raw.Indent,
		DBPath:       raw.DBPath,
		Listen:       raw.Listen,
		APIAccessKey: raw.APIAccessKey,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	return cfg, nil
}

// resolvePath joins a relative bibliography path with baseDir, or with the
// directory of the running executable when baseDir is empty.
func resolvePath(baseDir, file string) (string, error) {
	if file == "" || filepath.IsAbs(file) {
		return file, nil
	}

	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate program directory: %w", err)
		}
		baseDir = filepath.Dir(exe)
	}

	return filepath.Join(baseDir, file), nil
}
