package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrGatewaySecretRequired is returned when GATEWAY_SECRET is not set. Receipts are signed
// with it.
var ErrGatewaySecretRequired = errors.New("GATEWAY_SECRET is required")

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	ClientOrigin        string
	PaymentCurrency     string
	GatewayKeyID        string
	GatewaySecret       string
	GatewayTimeout      time.Duration
	HubSubscriberBuffer int
	ReportSchedule      string
	UnsettledAfter      time.Duration
}

// UsePostgres reports whether a database is configured. Without one the service
// keeps its state in memory.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the given .env files, when present, and then the environment.
// Variables already set in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	gatewayTimeout, err := durationVariable("GATEWAY_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	unsettledAfter, err := durationVariable("UNSETTLED_AFTER", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	buffer, err := intVariable("HUB_SUBSCRIBER_BUFFER", 64)
	if err != nil {
		return Config{}, err
	}
	gatewaySecret := variable("GATEWAY_SECRET", "")
	if gatewaySecret == "" {
		return Config{}, ErrGatewaySecretRequired
	}

	return Config{
		HTTPPort:            variable("HTTP_PORT", "3000"),
		DBHost:              variable("DB_HOST", ""),
		DBPort:              variable("DB_PORT", "5432"),
		DBUser:              variable("DB_USER", "postgres"),
		DBPassword:          variable("DB_PASSWORD", ""),
		DBName:              variable("DB_NAME", "drivefood"),
		DBSslMode:           variable("DB_SSLMODE", "disable"),
		ClientOrigin:        variable("CLIENT_ORIGIN", variable("MYAPP_CLIENT_ORIGIN", "*")),
		PaymentCurrency:     strings.ToUpper(variable("PAYMENT_CURRENCY", "INR")),
		GatewayKeyID:        variable("GATEWAY_KEY_ID", "rzp_test_drivefood"),
		GatewaySecret:       gatewaySecret,
		GatewayTimeout:      gatewayTimeout,
		HubSubscriberBuffer: buffer,
		ReportSchedule:      variable("REPORT_SCHEDULE", "@every 1m"),
		UnsettledAfter:      unsettledAfter,
	}, nil
}

func variable(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func intVariable(key string, fallback int) (int, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid positive integer %q", key, raw)
	}
	return n, nil
}
