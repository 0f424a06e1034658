package csvgears

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no config file is named explicitly.
const DefaultConfigFile = "~/.csvgears/config"

// DefaultConfigProfile is the profile used when none is named.
const DefaultConfigProfile = "default"

var errProfileNotFound = errors.New("config profile not found")

// Profile holds tool defaults loaded from a config file. Empty fields are unset.
type Profile struct {
	Delimiter       string `yaml:"delimiter"`
	OutputDelimiter string `yaml:"output-delimiter"`
	Compress        string `yaml:"compress"`
	Decompress      *bool  `yaml:"decompress"`
	LogLevel        string `yaml:"log-level"`
	LogFormat       string `yaml:"log-format"`
}

// Apply overlays the stream settings of p onto opts.
func (p Profile) Apply(opts StreamOptions) (StreamOptions, error) {
	if p.Delimiter != "" {
		d, err := ParseDelimiter(p.Delimiter)
		if err != nil {
			return opts, err
		}
		opts = opts.WithDelimiter(d)
	}
	if p.OutputDelimiter != "" {
		d, err := ParseDelimiter(p.OutputDelimiter)
		if err != nil {
			return opts, err
		}
		opts = opts.WithOutputDelimiter(d)
	}
	if p.Compress != "" {
		c, err := ParseCompressionType(p.Compress)
		if err != nil {
			return opts, err
		}
		opts = opts.WithCompression(c)
	}
	if p.Decompress != nil {
		opts = opts.WithDecompress(*p.Decompress)
	}
	return opts, nil
}

// ParseDelimiter converts a delimiter option into a rune. It accepts exactly
// one character, or the names "tab" and `\t`.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, configError("delimiter must be a single character, got %q", s)
	}
	d, _ := utf8.DecodeRuneInString(s)
	if err := validateDelimiter("delimiter", d); err != nil {
		return 0, err
	}
	return d, nil
}

// Expand the given file path if it starts with a ~/
func expandUser(fname string) (string, error) {
	if strings.HasPrefix(fname, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", err
		}
		return filepath.Join(usr.HomeDir, fname[2:]), nil
	}
	return fname, nil
}

// LoadProfile reads the named profile from fname. Files ending in .yaml or
// .yml are YAML documents keyed by profile name; anything else is INI with
// one section per profile. When optional is true a missing file or profile
// yields an empty Profile.
func LoadProfile(fname, profile string, optional bool) (Profile, error) {
	path, err := expandUser(fname)
	if err != nil {
		return Profile{}, configError("cannot expand config path %s: %v", fname, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is necessary for config loading
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("%w: error loading config: %w", ErrConfiguration, err)
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = loadYAMLProfile(data, profile)
	default:
		p, err = loadINIProfile(data, profile)
	}
	if optional && errors.Is(err, errProfileNotFound) {
		return Profile{}, nil
	}
	return p, err
}

func loadINIProfile(data []byte, profile string) (Profile, error) {
	// ';' and '#' are common delimiters, so only whole-line comments are recognised
	info, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: error loading config: %w", ErrConfiguration, err)
	}
	if !info.HasSection(profile) {
		return Profile{}, fmt.Errorf("%w: %w: %s", ErrConfiguration, errProfileNotFound, profile)
	}
	stanza := info.Section(profile)

	p := Profile{
		Delimiter:       stanza.Key("delimiter").String(),
		OutputDelimiter: stanza.Key("output-delimiter").String(),
		Compress:        stanza.Key("compress").String(),
		LogLevel:        stanza.Key("log-level").String(),
		LogFormat:       stanza.Key("log-format").String(),
	}
	if stanza.HasKey("decompress") {
		v, err := stanza.Key("decompress").Bool()
		if err != nil {
			return Profile{}, configError("invalid decompress value: %v", err)
		}
		p.Decompress = &v
	}
	return p, nil
}

func loadYAMLProfile(data []byte, profile string) (Profile, error) {
	var profiles map[string]Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return Profile{}, fmt.Errorf("%w: error loading config: %w", ErrConfiguration, err)
	}
	p, ok := profiles[profile]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %w: %s", ErrConfiguration, errProfileNotFound, profile)
	}
	return p, nil
}
