package config

import (
	"os"
	"strconv"
	"time"
)

// ============================================================
// Server configuration
// ============================================================

// Server holds HTTP server settings.
type Server struct {
	Addr         string
	Devices      string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// LoadServer reads server settings from the environment.
func LoadServer() *Server {
	return &Server{
		Addr:         getEnv("FLOORPLAN_ADDR", ":3000"),
		Devices:      getEnv("FLOORPLAN_DEVICES", "sample"),
		ReadTimeout:  getEnvAsInt("FLOORPLAN_READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("FLOORPLAN_WRITE_TIMEOUT", 10),
	}
}

// ReadTimeoutDuration returns ReadTimeout as a duration.
func (s *Server) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns WriteTimeout as a duration.
func (s *Server) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
