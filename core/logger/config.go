package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info" validate:"in:debug,info,warn,error"`
	// Format is the encoding (console, json).
	Format string `mapstructure:"format" default:"console" validate:"in:console,json"`
}
