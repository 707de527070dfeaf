package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// loadLayers reads the configuration file and wires up environment
// overrides. The returned viper answers lookups with environment > file
// priority; the command line is layered on top by the caller, so the overall
// contract is CLI > environment > file > registered default.
//
// The default config path is allowed to be absent; a path the user passed
// explicitly is not.
func loadLayers(path string, explicit bool) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("proxyforge")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file %s: %w", path, err)
		}
	}
	return v, nil
}
