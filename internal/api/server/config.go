package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/pkg/utils"
	"github.com/dustin/go-humanize"
)

const (
	defaultPort            = "8080"
	defaultUploadLimit     = "32M"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// UploadLimit is the largest request body accepted, in echo's BodyLimit format, e.g. "32M".
	UploadLimit     string
	ShutdownTimeout time.Duration
}

// LoadConfig reads the server settings from the environment. .env files are loaded by the caller.
func LoadConfig() (*Config, error) {
	port := envOr("PORT", defaultPort)
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	uploadLimit := envOr("UPLOAD_LIMIT", defaultUploadLimit)
	if n, err := humanize.ParseBytes(uploadLimit); err != nil || n == 0 {
		return nil, fmt.Errorf("invalid UPLOAD_LIMIT %q: expected a size such as 32M", uploadLimit)
	}

	shutdown := defaultShutdownTimeout
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: expected a positive duration", v)
		}
		shutdown = d
	}

	return &Config{
		Port:            port,
		UseHttp2:        os.Getenv("USE_HTTP2") == "true",
		CorsOrigins:     origins,
		UploadLimit:     uploadLimit,
		ShutdownTimeout: shutdown,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 0 || portNum > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	return nil
}
