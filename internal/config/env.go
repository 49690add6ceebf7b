package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PreviewBackendMemory = "memory"
	PreviewBackendS3     = "s3"
)

type Config struct {
	AIAPIKey       string
	GenModel       string
	Temperature    float32
	OCRTimeout     time.Duration
	Port           string
	MaxUploadMB    int
	WebDir         string
	AllowedOrigins []string

	PreviewBackend string
	AwsAccessKey   string
	AwsSecretKey   string
	AwsRegion      string
	BucketName     string
}

// LoadConfig loads the environment variables and return config.
// The API key is not checked here; a missing key fails each OCR
// request and shows up on the affected record.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		AIAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GenModel:       getEnv("GEN_MODEL", "gemini-1.5-pro"),
		Temperature:    getEnvFloat("OCR_TEMPERATURE", 0.1),
		OCRTimeout:     getEnvDuration("OCR_TIMEOUT", 2*time.Minute),
		Port:           getEnv("PORT", "8080"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 32),
		WebDir:         getEnv("WEB_DIR", "./web"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		PreviewBackend: strings.ToLower(getEnv("PREVIEW_BACKEND", PreviewBackendMemory)),
		AwsAccessKey:   getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:   getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:      getEnv("AWS_REGION", "us-east-2"),
		BucketName:     getEnv("BUCKET_NAME", "visionocr-previews"),
	}

	if cfg.PreviewBackend != PreviewBackendMemory && cfg.PreviewBackend != PreviewBackendS3 {
		log.Printf("WARN: PREVIEW_BACKEND=%q unknown, using %q", cfg.PreviewBackend, PreviewBackendMemory)
		cfg.PreviewBackend = PreviewBackendMemory
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float32) float32 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Printf("WARN: %s=%q not a number, using default %g", key, v, def)
		return def
	}
	return float32(f)
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a duration, using default %s", key, v, def)
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
