package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingDotenv is returned when a dotenv file exists but cannot be read or parsed.
	ErrLoadingDotenv = errors.New("failed to load dotenv file")
)
