package utils

import "flag"

const DefaultConfigPath = "simpledb.yaml"

// CLIInputs holds command line overrides. Zero values mean "keep the value
// from the config file".
type CLIInputs struct {
	ConfigPath      string
	LogFilePath     string
	MaxBytesPerFile int64
	Compression     string
	LogLevel        string
}

func HandleCLIInputs() CLIInputs {
	var in CLIInputs

	flag.StringVar(&in.ConfigPath, "config", DefaultConfigPath, "Path to a YAML config file")
	flag.StringVar(&in.LogFilePath, "log", "", "Log file path (default <cwd>/log)")
	flag.Int64Var(&in.MaxBytesPerFile, "max-bytes", 0, "Compaction threshold in bytes (default 10 MiB)")
	flag.StringVar(&in.Compression, "compression", "", "Value compression: none or zstd")
	flag.StringVar(&in.LogLevel, "log-level", "", "Logger level: trace, debug, info, warn, error")
	flag.Parse()

	return in
}
