package constants

import "os"

// GetScoreDir is where movement files are read from and exported to.
func GetScoreDir() string {
	path := os.Getenv("SCOF_PATH")
	if path != "" {
		return path
	}
	return "."
}

func GetAddr() string {
	addr := os.Getenv("SCOF_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetAllowedOrigins is a comma separated CORS allow list, "*" by default.
func GetAllowedOrigins() string {
	origins := os.Getenv("SCOF_ALLOWED_ORIGINS")
	if origins != "" {
		return origins
	}
	return "*"
}

const TicksPerQuarter = 480

const Velocity uint8 = 100

// NOTE: sessions live in memory only
const MaxSessions = 256
