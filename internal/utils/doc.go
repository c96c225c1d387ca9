// Package utils exposes reusable helpers consumed by the castfix commands.
//
// It houses ConfigurationLoader, which layers embedded defaults, configuration
// files, and CASTFIX_ environment variables through Viper; LoggerFactory, which
// builds zap loggers that write to standard error; and FlushingWriter, which
// keeps forwarded recorder output visible as it arrives.
package utils
