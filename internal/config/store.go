package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/naka-gawa/ncu/internal/domain"
)

const (
	// HomeEnv overrides the home directory used for the global layer.
	HomeEnv = "XDG_CONFIG_HOME"

	rcFileName    = ".ncurc"
	localDirName  = ".ncu"
	localFileName = "config"
	configIndent  = "  "
)

// LookupEnv reads one environment variable. os.LookupEnv satisfies it.
type LookupEnv func(key string) (string, bool)

// Store reads and writes the global and local configuration layers.
type Store struct {
	fs      FileSystem
	lookup  LookupEnv
	homeDir func() (string, error)
	workDir func() (string, error)
	logger  *log.Logger
}

// NewStore creates a Store over the given file system and environment.
func NewStore(fsys FileSystem, lookup LookupEnv, logger *log.Logger) *Store {
	return &Store{
		fs:      fsys,
		lookup:  lookup,
		homeDir: os.UserHomeDir,
		workDir: os.Getwd,
		logger:  logger,
	}
}

// HomeDir returns explicit when it is set, otherwise the XDG_CONFIG_HOME
// override, otherwise the platform home directory. The environment is read on
// every call.
func (s *Store) HomeDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.lookup != nil {
		if v, ok := s.lookup(HomeEnv); ok && v != "" {
			return v, nil
		}
	}
	home, err := s.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// NcuDir returns the hidden local state directory under base, or under the
// current working directory when base is empty.
func (s *Store) NcuDir(base string) (string, error) {
	if base == "" {
		wd, err := s.workDir()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	return filepath.Join(base, localDirName), nil
}

// Path returns the file backing the global or local layer.
func (s *Store) Path(global bool, base string) (string, error) {
	if global {
		home, err := s.HomeDir(base)
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rcFileName), nil
	}
	dir, err := s.NcuDir(base)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, localFileName), nil
}

// Load reads one layer. A missing file yields an empty layer.
func (s *Store) Load(global bool, base string) (domain.Config, error) {
	path, err := s.Path(global, base)
	if err != nil {
		return nil, err
	}
	if !s.fs.Exists(path) {
		s.logger.Printf("Config: %s does not exist, using empty %s layer", path, layerName(global))
		return domain.Config{}, nil
	}
	text, err := s.fs.ReadText(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	cfg, err := parse(text)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	s.logger.Printf("Config: loaded %d keys from %s", len(cfg), path)
	return cfg, nil
}

// LoadMerged returns the global layer overlaid by the local layer. dir is the
// base of the local layer and home the base of the global one; either may be
// empty to use the defaults.
func (s *Store) LoadMerged(dir, home string) (domain.Config, error) {
	local, err := s.Load(false, dir)
	if err != nil {
		return nil, err
	}
	global, err := s.Load(true, home)
	if err != nil {
		return nil, err
	}
	return global.Merge(local), nil
}

// Write replaces one layer with cfg. Keys absent from cfg are lost. A value
// that Load would not read back unchanged fails with a ValueError and nothing
// is written.
func (s *Store) Write(global bool, cfg domain.Config, base string) error {
	path, err := s.Path(global, base)
	if err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg.Clone(), "", configIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := s.fs.EnsureDirectory(dir); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := s.fs.WriteText(path, string(data)+"\n"); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	s.logger.Printf("Config: wrote %d keys to %s", len(cfg), path)
	return nil
}

// Update overwrites the keys in partial and keeps every other key of the
// layer. The read and the write are not atomic with respect to other
// processes.
func (s *Store) Update(global bool, partial domain.Config, base string) error {
	current, err := s.Load(global, base)
	if err != nil {
		return err
	}
	return s.Write(global, current.Merge(partial), base)
}

func parse(text string) (domain.Config, error) {
	var cfg domain.Config
	if err := json.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("config is not a JSON object")
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate accepts only the values JSON decoding produces for a flat object:
// string, finite float64, bool and nil.
func validate(cfg domain.Config) error {
	for k, v := range cfg {
		switch v := v.(type) {
		case string, bool, nil:
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ValueError{Key: k, Value: v}
			}
		default:
			return &ValueError{Key: k, Value: v}
		}
	}
	return nil
}

func layerName(global bool) string {
	if global {
		return "global"
	}
	return "local"
}
