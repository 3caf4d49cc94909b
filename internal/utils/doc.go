// Package utils exposes reusable helpers consumed by the CLI.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// environment variables, and zap logging, and FlushingWriter, which keeps report
// lines visible as soon as they are written.
package utils
