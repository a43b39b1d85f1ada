package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	DB           DBConfig
	JWT          JWTConfig
	S3           S3Config
	Log          LogConfig
	CORS         CORSConfig
	Email        EmailConfig
	Tax          TaxConfig
	Verification VerificationConfig
}

// TaxConfig holds the GST policy applied when recomputing totals.
type TaxConfig struct {
	RatePercent   float64 `mapstructure:"rate_percent"`
	SupplierState string  `mapstructure:"supplier_state"`
}

// VerificationConfig holds settings for the verification pipeline.
type VerificationConfig struct {
	AlertRecipients  []string `mapstructure:"alert_recipients"`
	ArchiveSnapshots bool     `mapstructure:"archive_snapshots"`
	MaxPayloadKB     int64    `mapstructure:"max_payload_kb"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ConsoleURL  string `mapstructure:"console_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds settings for validating access tokens issued by the
// console backend.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	PresignExpiry  int64  `mapstructure:"presign_expiry"`
	SnapshotPrefix string `mapstructure:"snapshot_prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLKIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billkit")
	v.SetDefault("db.password", "billkit_secret")
	v.SetDefault("db.name", "billkit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "access")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billkit-snapshots")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)
	v.SetDefault("s3.snapshot_prefix", "verifications")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@billkit.local")
	v.SetDefault("email.from_name", "Billkit")
	v.SetDefault("email.console_url", "http://localhost:3000")

	// Tax defaults
	v.SetDefault("tax.rate_percent", 18)
	v.SetDefault("tax.supplier_state", "Uttarakhand")

	// Verification defaults
	v.SetDefault("verification.alert_recipients", "")
	v.SetDefault("verification.archive_snapshots", true)
	v.SetDefault("verification.max_payload_kb", 512)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "BILLKIT_SERVER_PORT",
		"server.read_timeout":            "BILLKIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "BILLKIT_SERVER_WRITE_TIMEOUT",
		"server.environment":             "BILLKIT_SERVER_ENVIRONMENT",
		"db.host":                        "BILLKIT_DB_HOST",
		"db.port":                        "BILLKIT_DB_PORT",
		"db.user":                        "BILLKIT_DB_USER",
		"db.password":                    "BILLKIT_DB_PASSWORD",
		"db.name":                        "BILLKIT_DB_NAME",
		"db.sslmode":                     "BILLKIT_DB_SSLMODE",
		"db.max_open":                    "BILLKIT_DB_MAX_OPEN",
		"db.max_idle":                    "BILLKIT_DB_MAX_IDLE",
		"jwt.secret":                     "BILLKIT_JWT_SECRET",
		"jwt.issuer":                     "BILLKIT_JWT_ISSUER",
		"jwt.audience":                   "BILLKIT_JWT_AUDIENCE",
		"s3.region":                      "BILLKIT_S3_REGION",
		"s3.bucket":                      "BILLKIT_S3_BUCKET",
		"s3.endpoint":                    "BILLKIT_S3_ENDPOINT",
		"s3.access_key":                  "BILLKIT_S3_ACCESS_KEY",
		"s3.secret_key":                  "BILLKIT_S3_SECRET_KEY",
		"s3.presign_expiry":              "BILLKIT_S3_PRESIGN_EXPIRY",
		"s3.snapshot_prefix":             "BILLKIT_S3_SNAPSHOT_PREFIX",
		"log.level":                      "BILLKIT_LOG_LEVEL",
		"log.format":                     "BILLKIT_LOG_FORMAT",
		"cors.allowed_origins":           "BILLKIT_CORS_ALLOWED_ORIGINS",
		"email.provider":                 "BILLKIT_EMAIL_PROVIDER",
		"email.region":                   "BILLKIT_EMAIL_REGION",
		"email.from_address":             "BILLKIT_EMAIL_FROM_ADDRESS",
		"email.from_name":                "BILLKIT_EMAIL_FROM_NAME",
		"email.console_url":              "BILLKIT_EMAIL_CONSOLE_URL",
		"tax.rate_percent":               "BILLKIT_TAX_RATE_PERCENT",
		"tax.supplier_state":             "BILLKIT_TAX_SUPPLIER_STATE",
		"verification.alert_recipients":  "BILLKIT_VERIFICATION_ALERT_RECIPIENTS",
		"verification.archive_snapshots": "BILLKIT_VERIFICATION_ARCHIVE_SNAPSHOTS",
		"verification.max_payload_kb":    "BILLKIT_VERIFICATION_MAX_PAYLOAD_KB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLKIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLKIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:         v.GetString("s3.region"),
		Bucket:         v.GetString("s3.bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		PresignExpiry:  v.GetInt64("s3.presign_expiry"),
		SnapshotPrefix: v.GetString("s3.snapshot_prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ConsoleURL:  v.GetString("email.console_url"),
	}
	cfg.Tax = TaxConfig{
		RatePercent:   v.GetFloat64("tax.rate_percent"),
		SupplierState: v.GetString("tax.supplier_state"),
	}
	cfg.Verification = VerificationConfig{
		AlertRecipients:  splitList(v.GetString("verification.alert_recipients")),
		ArchiveSnapshots: v.GetBool("verification.archive_snapshots"),
		MaxPayloadKB:     v.GetInt64("verification.max_payload_kb"),
	}

	if cfg.Tax.RatePercent < 0 {
		return nil, fmt.Errorf("config: tax.rate_percent must not be negative, got %v", cfg.Tax.RatePercent)
	}
	return cfg, nil
}

// splitList parses a comma-separated string, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
