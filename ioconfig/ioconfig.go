// Package ioconfig loads a YAML scenario file into internal/config.Params,
// the adapter the core's flat parameter block expects the CLI driver to
// populate from a file. Values absent from the file fall back to
// config.DefaultParams(); the loaded struct is always run through
// NormalizeAndValidate before being returned, the same failure mode as
// constructing Params by hand.
package ioconfig

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/flocksim/swarmcore/internal/config"
)

// Load reads the YAML scenario file at path into a config.Params, layered
// on top of config.DefaultParams() so a scenario file only needs to name
// the fields it overrides.
func Load(path string) (config.Params, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	defaults := config.DefaultParams()
	setDefaults(vp, defaults)

	if err := vp.ReadInConfig(); err != nil {
		return config.Params{}, fmt.Errorf("ioconfig: read %s: %w", path, err)
	}

	params := defaults
	if err := vp.Unmarshal(&params); err != nil {
		return config.Params{}, fmt.Errorf("ioconfig: unmarshal %s: %w", path, err)
	}

	if err := params.NormalizeAndValidate(); err != nil {
		return config.Params{}, fmt.Errorf("ioconfig: %s: %w", path, err)
	}
	return params, nil
}

// setDefaults seeds viper with the nested default values so keys omitted
// from the scenario file resolve to config.DefaultParams() rather than
// Go's zero value (which would fail validation for almost every field).
func setDefaults(vp *viper.Viper, defaults config.Params) {
	vp.SetDefault("flocking", structToMap(defaults.Flocking))
	vp.SetDefault("unit", structToMap(defaults.Unit))
	vp.SetDefault("situation", structToMap(defaults.Situation))
}

// structToMap turns a flat config struct into a map viper can use as a
// nested default, keyed by lower-cased field name to match viper/
// mapstructure's case-insensitive matching of YAML keys to struct fields.
func structToMap(v any) map[string]any {
	out := make(map[string]any)
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.NumField(); i++ {
		name := rv.Type().Field(i).Name
		out[strings.ToLower(name)] = rv.Field(i).Interface()
	}
	return out
}
