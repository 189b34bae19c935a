package coursemd

import "github.com/goliatone/go-coursemd/internal/runtimeconfig"

var (
	ErrCourseDirRequired       = runtimeconfig.ErrCourseDirRequired
	ErrCommandTimeoutInvalid   = runtimeconfig.ErrCommandTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	Features       = runtimeconfig.Features
	CourseConfig   = runtimeconfig.CourseConfig
	RenderConfig   = runtimeconfig.RenderConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
