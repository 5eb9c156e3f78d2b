package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	AllowOrigins    []string
	LogstashTCPAddr string

	// MediaBackend selects where uploaded vacation images live: "local"
	// keeps them on disk and serves them from MediaPublicPath, "minio"
	// stores them in an object bucket.
	MediaBackend    string
	MediaLocalDir   string
	MediaStagingDir string
	MediaPublicPath string
	MediaMaxBytes   int64

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOBucket    string
	MinIOPublicURL string

	SeedFile string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	mediaMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("MEDIA_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		mediaMax = v
	}

	cfg := Config{
		Port:            getenv("PORT", "3000"),
		DatabaseURL:     must("DATABASE_URL"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		MediaBackend:    strings.ToLower(getenv("MEDIA_BACKEND", "local")),
		MediaLocalDir:   getenv("MEDIA_LOCAL_DIR", "./images"),
		MediaStagingDir: getenv("MEDIA_STAGING_DIR", "./images/.staging"),
		MediaPublicPath: getenv("MEDIA_PUBLIC_PATH", "/images"),
		MediaMaxBytes:   mediaMax,
		SeedFile:        getenv("SEED_FILE", "seed.yaml"),
	}

	if cfg.MediaBackend == "minio" {
		cfg.MinIOEndpoint = must("MINIO_ENDPOINT")
		cfg.MinIOAccessKey = must("MINIO_ACCESS_KEY")
		cfg.MinIOSecretKey = must("MINIO_SECRET_KEY")
		cfg.MinIOUseSSL = getenv("MINIO_USE_SSL", "false") == "true"
		cfg.MinIOBucket = getenv("MINIO_BUCKET", "vacation-images")
		cfg.MinIOPublicURL = getenv("MINIO_PUBLIC_URL", "")
	}

	return cfg
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
