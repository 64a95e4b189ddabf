package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/adapters/out/postgres"
	"storefront/internal/pkg/errs"
)

const (
	defaultAccessTTL   = 30 * time.Minute
	defaultRefreshTTL  = 7 * 24 * time.Hour
	defaultUploadDir   = "uploads"
	defaultSweepCron   = "0 */10 * * * *"
	defaultBcryptCost  = 12
	defaultLogLevel    = "info"
	minJWTSecretLength = 32
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration
	BcryptCost    int

	RedisAddr string
	AMQPURL   string

	UploadDir           string
	UploadSweepSchedule string

	LogFile  string
	LogLevel string

	AdminEmail    string
	AdminPassword string
}

// LoadConfig reads the configuration through getenv and applies defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:            getenv("HTTP_PORT"),
		DBHost:              getenv("DB_HOST"),
		DBPort:              getenv("DB_PORT"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           getenv("DB_SSLMODE"),
		JWTSecret:           getenv("JWT_SECRET"),
		RedisAddr:           getenv("REDIS_ADDR"),
		AMQPURL:             getenv("AMQP_URL"),
		UploadDir:           withDefault(getenv("UPLOAD_DIR"), defaultUploadDir),
		UploadSweepSchedule: withDefault(getenv("UPLOAD_SWEEP_SCHEDULE"), defaultSweepCron),
		LogFile:             getenv("LOG_FILE"),
		LogLevel:            withDefault(getenv("LOG_LEVEL"), defaultLogLevel),
		AdminEmail:          getenv("ADMIN_EMAIL"),
		AdminPassword:       getenv("ADMIN_PASSWORD"),
	}

	var err, parseErr error
	cfg.JWTAccessTTL, err = durationOrDefault(getenv("JWT_ACCESS_TTL"), "JWT_ACCESS_TTL", defaultAccessTTL)
	parseErr = errors.Join(parseErr, err)
	cfg.JWTRefreshTTL, err = durationOrDefault(getenv("JWT_REFRESH_TTL"), "JWT_REFRESH_TTL", defaultRefreshTTL)
	parseErr = errors.Join(parseErr, err)
	cfg.BcryptCost, err = intOrDefault(getenv("BCRYPT_COST"), "BCRYPT_COST", defaultBcryptCost)
	parseErr = errors.Join(parseErr, err)

	if err = errors.Join(parseErr, cfg.Validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required key is present and consistent.
func (c Config) Validate() error {
	var problems []error
	for key, value := range map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
	}

	if c.JWTSecret != "" && len(c.JWTSecret) < minJWTSecretLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("JWT_SECRET length", len(c.JWTSecret), minJWTSecretLength, 1024))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("ADMIN_EMAIL",
			errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")))
	}

	return errors.Join(problems...)
}

// DBSettings returns the database connection settings.
func (c Config) DBSettings() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationOrDefault(value, key string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s must be positive", value))
	}
	return d, nil
}

func intOrDefault(value, key string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return n, nil
}
