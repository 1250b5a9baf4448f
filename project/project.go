package project

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/naoina/toml"
)

// ConfigFile is the name of the project file looked up in the root directory.
const ConfigFile = "osta.toml"

// Project is a directory of osta sources together with its settings.
type Project struct {
	RootDir string
	// ConfigPath is empty when the project has no osta.toml.
	ConfigPath string
	Config     Config
}

// Config mirrors osta.toml. Keys are the field names.
type Config struct {
	Name      string
	Sources   []string
	Extension string
	Watch     WatchConfig
	Cache     CacheConfig
	Log       LogConfig
}

type WatchConfig struct {
	Interval Duration
}

type CacheConfig struct {
	// Size is the number of parse results kept in memory.
	Size int
}

type LogConfig struct {
	Verbosity int
	File      string `toml:",omitempty"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Defaults returns the settings of a project without osta.toml.
func Defaults(rootDir string) Config {
	name := filepath.Base(rootDir)
	if abs, err := filepath.Abs(rootDir); err == nil {
		name = filepath.Base(abs)
	}
	return Config{
		Name:      name,
		Sources:   []string{"."},
		Extension: ".osta",
		Watch:     WatchConfig{Interval: Duration{500 * time.Millisecond}},
		Cache:     CacheConfig{Size: 256},
	}
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads rootDir/osta.toml on top of the defaults. A missing file is
// not an error.
func LoadFrom(rootDir string) (*Project, error) {
	proj := &Project{
		RootDir: rootDir,
		Config:  Defaults(rootDir),
	}

	path := filepath.Join(rootDir, ConfigFile)
	if err := loadConfig(path, &proj.Config); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return proj, nil
		}
		return nil, err
	}
	proj.ConfigPath = path

	if proj.Config.Cache.Size <= 0 {
		return nil, fmt.Errorf("%s: Cache.Size must be positive, got %d", path, proj.Config.Cache.Size)
	}
	if proj.Config.Watch.Interval.Duration <= 0 {
		return nil, fmt.Errorf("%s: Watch.Interval must be positive, got %s", path, proj.Config.Watch.Interval)
	}
	if !strings.HasPrefix(proj.Config.Extension, ".") {
		proj.Config.Extension = "." + proj.Config.Extension
	}
	return proj, nil
}

func loadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	} else if err != nil {
		err = fmt.Errorf("%s: %w", file, err)
	}
	return err
}

// Marshal renders cfg in osta.toml syntax.
func Marshal(cfg Config) ([]byte, error) {
	return tomlSettings.Marshal(&cfg)
}

// SourceFiles returns every file with the project's extension below its
// source directories. Hidden directories are skipped.
func (p *Project) SourceFiles() ([]string, error) {
	var files []string
	for _, src := range p.Config.Sources {
		dir := filepath.Join(p.RootDir, src)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != p.Config.Extension {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan sources in %s: %w", dir, err)
		}
	}
	return files, nil
}

// IsSource reports whether path has the project's source extension.
func (p *Project) IsSource(path string) bool {
	return filepath.Ext(path) == p.Config.Extension
}
