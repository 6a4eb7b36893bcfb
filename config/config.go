// Package config loads tripeg's settings from flags and the environment.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a viper instance bound to tripeg's flag set. Every setting
// can also come from the environment with a TRIPEG_ prefix, e.g.
// TRIPEG_EMPTY_HOLE=4.
type Config struct {
	v *viper.Viper
}

// Load parses args (typically os.Args[1:]) and binds the environment.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("tripeg", pflag.ContinueOnError)
	fs.Int("rows", 5, "number of rows on the triangular board")
	fs.Int("empty-hole", 0, "index of the initially empty hole")
	fs.Int("threads", 0, "solver worker count; 0 picks a sensible default, 1 forces sequential")
	fs.Bool("solve", false, "run one automatic solve and exit instead of starting the shell")
	fs.Bool("debug", false, "debug logging")
	fs.String("cpu-profile", "", "write a CPU profile to this path")
	fs.String("store-path", "", "path to the solve archive database; empty disables archiving")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.v = viper.New()
	c.v.SetEnvPrefix("tripeg")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return c.v.BindPFlags(fs)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// Set overrides a setting at runtime; the shell's "set" command uses it.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// AllSettings returns the current settings map for display.
func (c *Config) AllSettings() map[string]any {
	return c.v.AllSettings()
}
