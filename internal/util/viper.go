package util

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the inspected environment variables.
const EnvPrefix = "R53R" // Route 53 Register

func GetSubViper(v *viper.Viper, key string) *viper.Viper {
	n := v.Sub(key)
	if n == nil {
		n = viper.New()
	}
	InitViper(n, key)
	return n
}

// InitViper sets up env var handling for a viper. This must be run on every created sub viper as these settings
// are not persisted to nested viper instances.
func InitViper(v *viper.Viper, subViperName string) {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if subViperName != "" {
		// Sub viper environment variables are accessed via <EnvPrefix>_<subViperName>_<varName>
		v.SetEnvPrefix(EnvPrefix + "_" + strings.ToUpper(subViperName))
	} else {
		v.SetEnvPrefix(EnvPrefix)
	}
	v.SetTypeByDefaultValue(true)
	v.AutomaticEnv()
}

// BindEnvAliases makes key also readable from the given unprefixed environment variables.
// The prefixed variable keeps precedence.
func BindEnvAliases(v *viper.Viper, key string, aliases ...string) error {
	names := make([]string, 0, len(aliases)+1)
	names = append(names, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	names = append(names, aliases...)
	return v.BindEnv(append([]string{key}, names...)...)
}
