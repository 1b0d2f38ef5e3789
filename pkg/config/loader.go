package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/mdxaml/pkg/errors"
	"github.com/arthur-debert/mdxaml/pkg/logging"
)

// EnvPrefix marks environment variables read as configuration
const EnvPrefix = "MDXAML_"

// Loader reads configuration layers
type Loader struct {
	// Fs is the filesystem the config file is read from
	Fs afero.Fs

	// Path is an explicit config file. It must exist when set. When empty
	// the default user file is used if present.
	Path string

	// Overrides are applied last, keyed by dotted path ("render.fragment")
	Overrides map[string]interface{}
}

// DefaultPath returns the user config file location
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "mdxaml", "config.toml")
}

// Load returns the defaults merged with the user file and environment
func Load(fs afero.Fs, path string) (*Config, error) {
	return (&Loader{Fs: fs, Path: path}).Load()
}

// Load merges every layer and decodes the result
func (l *Loader) Load() (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	path, data, err := l.readFile()
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(l.Overrides) > 0 {
		if err := k.Load(confmap.Provider(l.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readFile returns nil data when no file applies
func (l *Loader) readFile() (string, []byte, error) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	path, explicit := l.Path, l.Path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		return path, data, nil
	case os.IsNotExist(err) && !explicit:
		return path, nil, nil
	default:
		return path, nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}
}

// envKey maps MDXAML_RENDER_IMAGE_PLACEHOLDER to render.image_placeholder.
// Only the first underscore separates the section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// trimSliceHookFunc trims the items of comma separated env lists
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.Slice {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := items[:0:0]
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}
