package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the full configuration for all carpool services.
type Config struct {
	Database  DBConfig
	RabbitMQ  MQConfig
	Geocoder  GeocoderConfig
	Services  ServicesConfig
	JWT       JWTConfig
	Dashboard DashboardConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type MQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

// GeocoderConfig configures the Nominatim lookup client.
// Nominatim's usage policy requires a descriptive User-Agent.
type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	TimeoutSeconds int
}

type ServicesConfig struct {
	CoordinatorPort int
	DashboardPort   int
}

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// DashboardConfig holds the single dashboard admin login.
// AdminPasswordHash is a bcrypt hash, never a plain password.
type DashboardConfig struct {
	AdminEmail        string
	AdminPasswordHash string
}

// Load reads CONFIG_DIR (default ./config); ENV always overrides file values.
func Load() Config {
	configDir := getEnv("CONFIG_DIR", "./config")
	cfg := Config{}

	dbPath := filepath.Join(configDir, "db.yaml")
	if dbKV, err := parseYAML(dbPath); err == nil {
		cfg.Database.Host = getStrWithEnv("DB_HOST", dbKV, "host", "localhost")
		cfg.Database.Port = getIntWithEnv("DB_PORT", dbKV, "port", 5432)
		cfg.Database.User = getStrWithEnv("DB_USER", dbKV, "user", "carpool_user")
		cfg.Database.Password = getStrWithEnv("DB_PASSWORD", dbKV, "password", "carpool_pass")
		cfg.Database.Database = getStrWithEnv("DB_NAME", dbKV, "database", "carpool_db")
		cfg.Database.SSLMode = getStrWithEnv("DB_SSLMODE", dbKV, "sslmode", "disable")
	} else {
		cfg.Database.Host = getEnv("DB_HOST", "localhost")
		cfg.Database.Port = getEnvInt("DB_PORT", 5432)
		cfg.Database.User = getEnv("DB_USER", "carpool_user")
		cfg.Database.Password = getEnv("DB_PASSWORD", "carpool_pass")
		cfg.Database.Database = getEnv("DB_NAME", "carpool_db")
		cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	}

	mqPath := filepath.Join(configDir, "mq.yaml")
	if mqKV, err := parseYAML(mqPath); err == nil {
		cfg.RabbitMQ.Host = getStrWithEnv("RABBITMQ_HOST", mqKV, "host", "localhost")
		cfg.RabbitMQ.Port = getIntWithEnv("RABBITMQ_PORT", mqKV, "port", 5672)
		cfg.RabbitMQ.User = getStrWithEnv("RABBITMQ_USER", mqKV, "user", "guest")
		cfg.RabbitMQ.Password = getStrWithEnv("RABBITMQ_PASSWORD", mqKV, "password", "guest")
		cfg.RabbitMQ.VHost = getStrWithEnv("RABBITMQ_VHOST", mqKV, "vhost", "/")
	} else {
		cfg.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
		cfg.RabbitMQ.Port = getEnvInt("RABBITMQ_PORT", 5672)
		cfg.RabbitMQ.User = getEnv("RABBITMQ_USER", "guest")
		cfg.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")
		cfg.RabbitMQ.VHost = getEnv("RABBITMQ_VHOST", "/")
	}

	geoPath := filepath.Join(configDir, "geocoder.yaml")
	if geoKV, err := parseYAML(geoPath); err == nil {
		cfg.Geocoder.BaseURL = getStrWithEnv("GEOCODER_BASE_URL", geoKV, "base_url", "https://nominatim.openstreetmap.org")
		cfg.Geocoder.UserAgent = getStrWithEnv("GEOCODER_USER_AGENT", geoKV, "user_agent", "carpool-coordinator/1.0")
		cfg.Geocoder.TimeoutSeconds = getIntWithEnv("GEOCODER_TIMEOUT_SECONDS", geoKV, "timeout_seconds", 10)
	} else {
		cfg.Geocoder.BaseURL = getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
		cfg.Geocoder.UserAgent = getEnv("GEOCODER_USER_AGENT", "carpool-coordinator/1.0")
		cfg.Geocoder.TimeoutSeconds = getEnvInt("GEOCODER_TIMEOUT_SECONDS", 10)
	}

	svcPath := filepath.Join(configDir, "service.yaml")
	if svcKV, err := parseYAML(svcPath); err == nil {
		cfg.Services.CoordinatorPort = getIntWithEnv("COORDINATOR_PORT", svcKV, "coordinator", 3000)
		cfg.Services.DashboardPort = getIntWithEnv("DASHBOARD_PORT", svcKV, "dashboard", 3001)
	} else {
		cfg.Services.CoordinatorPort = getEnvInt("COORDINATOR_PORT", 3000)
		cfg.Services.DashboardPort = getEnvInt("DASHBOARD_PORT", 3001)
	}

	jwtPath := filepath.Join(configDir, "jwt.yaml")
	if jwtKV, err := parseYAML(jwtPath); err == nil {
		if sec, ok := jwtKV["jwt"]; ok {
			cfg.JWT.Secret = getStrWithEnvNested("JWT_SECRET", sec, "secret", "dev_secret")
			cfg.JWT.ExpiryMinutes = getIntWithEnvNested("JWT_EXPIRY_MINUTES", sec, "expiry_minutes", 60)
		} else {
			cfg.JWT.Secret = getStrWithEnv("JWT_SECRET", jwtKV, "secret", "dev_secret")
			cfg.JWT.ExpiryMinutes = getIntWithEnv("JWT_EXPIRY_MINUTES", jwtKV, "expiry_minutes", 60)
		}
	} else {
		cfg.JWT.Secret = getEnv("JWT_SECRET", "dev_secret")
		cfg.JWT.ExpiryMinutes = getEnvInt("JWT_EXPIRY_MINUTES", 60)
	}

	dashPath := filepath.Join(configDir, "dashboard.yaml")
	if dashKV, err := parseYAML(dashPath); err == nil {
		cfg.Dashboard.AdminEmail = getStrWithEnv("DASHBOARD_ADMIN_EMAIL", dashKV, "admin_email", "admin@localhost")
		cfg.Dashboard.AdminPasswordHash = getStrWithEnv("DASHBOARD_ADMIN_PASSWORD_HASH", dashKV, "admin_password_hash", "")
	} else {
		cfg.Dashboard.AdminEmail = getEnv("DASHBOARD_ADMIN_EMAIL", "admin@localhost")
		cfg.Dashboard.AdminPasswordHash = getEnv("DASHBOARD_ADMIN_PASSWORD_HASH", "")
	}

	return cfg
}

// parseYAML handles the flat "key: value" subset of YAML used for config
// files, optionally with one level of "section:" nesting. Not a general
// YAML parser.
func parseYAML(path string) (map[string]map[string]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := map[string]map[string]string{}
	section := ""

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			if result[section] == nil {
				result[section] = map[string]string{}
			}
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)

		if section != "" {
			if result[section] == nil {
				result[section] = map[string]string{}
			}
			result[section][key] = val
		} else {
			if result[""] == nil {
				result[""] = map[string]string{}
			}
			result[""][key] = val
		}
	}

	return result, sc.Err()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getStrWithEnv(envKey string, yaml map[string]map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if root, ok := yaml[""]; ok {
		if v, ok := root[key]; ok && v != "" {
			return v
		}
	}
	return def
}

func getIntWithEnv(envKey string, yaml map[string]map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if root, ok := yaml[""]; ok {
		if v, ok := root[key]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}

func getStrWithEnvNested(envKey string, section map[string]string, key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if v, ok := section[key]; ok && v != "" {
		return v
	}
	return def
}

func getIntWithEnvNested(envKey string, section map[string]string, key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if v, ok := section[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// AMQPURL returns the RabbitMQ connection URL.
func (c MQConfig) AMQPURL() string {
	vhost := strings.TrimPrefix(c.VHost, "/")
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, vhost)
}
