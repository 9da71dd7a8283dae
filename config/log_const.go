package config

// Color constants for logging
const (
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorPurple  = "\033[95m"
	ColorReset   = "\033[0m"
)
