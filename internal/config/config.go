package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

var requiredVars = []string{"PORT", "JWT_SECRET", "DB_CONNECTION_STRING", "APP_ENV", "WEBSITE_URL"}

type Config struct {
	Port           string
	Env            string
	WebsiteURL     string
	AllowedOrigins []string
	TrustedProxies []string
	LogLevel       string
	LogFormat      string
	DB             DBConfig
	Auth           AuthConfig
}

type DBConfig struct {
	Driver           string
	ConnectionString string
	Name             string
	ConnectTimeout   time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	AutoMigrate      bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	CookieDomain  string
	BcryptCost    int
	RatePerMinute int
	RateBurst     int
}

// MissingEnvError lists every required variable that was not set.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Keys, ", "))
}

// Load reads .env (if present) and the process environment. Values already
// present in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	var missing []string
	for _, key := range requiredVars {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, &MissingEnvError{Keys: missing}
	}

	env := &envReader{}

	cfg := Config{
		Port:       os.Getenv("PORT"),
		Env:        strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		WebsiteURL: strings.TrimRight(strings.TrimSpace(os.Getenv("WEBSITE_URL")), "/"),
		LogLevel:   getEnv("LOG_LEVEL", ""),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		DB: DBConfig{
			Driver:           strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			ConnectionString: os.Getenv("DB_CONNECTION_STRING"),
			Name:             getEnv("DB_NAME", "tidings"),
			ConnectTimeout:   env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
			MaxOpenConns:     env.integer("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:     env.integer("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  env.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:      env.boolean("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      env.duration("TOKEN_TTL", time.Hour),
			CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
			BcryptCost:    env.integer("BCRYPT_COST", 10),
			RatePerMinute: env.integer("AUTH_RATE_LIMIT", 10),
			RateBurst:     env.integer("AUTH_RATE_BURST", 5),
		},
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		env.fail(fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver))
	}

	cfg.AllowedOrigins = allowedOrigins(cfg.WebsiteURL, os.Getenv("ALLOWED_ORIGINS"))
	for _, origin := range cfg.AllowedOrigins {
		if err := checkOrigin(origin); err != nil {
			env.fail(err)
		}
	}

	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))
	for _, proxy := range cfg.TrustedProxies {
		if err := checkProxy(proxy); err != nil {
			env.fail(err)
		}
	}

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func allowedOrigins(websiteURL, extra string) []string {
	seen := make(map[string]struct{})
	origins := make([]string, 0, 4)

	for _, origin := range append([]string{websiteURL}, strings.Split(extra, ",")...) {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}

	return origins
}

// checkOrigin accepts what a browser sends in the Origin header: scheme and
// host, nothing else.
func checkOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("origin %q must be an http:// or https:// URL", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin %q must not carry a path or query", origin)
	}
	return nil
}

func checkProxy(proxy string) error {
	if strings.Contains(proxy, "/") {
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not a CIDR", proxy)
		}
		return nil
	}
	if net.ParseIP(proxy) == nil {
		return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP address", proxy)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// envReader parses optional typed variables and keeps every parse failure so
// they can be reported together.
type envReader struct {
	errs []error
}

func (r *envReader) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *envReader) integer(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not an integer", key, value))
		return fallback
	}
	return parsed
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not a duration (e.g. 15m, 1h)", key, value))
		return fallback
	}
	return parsed
}

func (r *envReader) boolean(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		r.fail(fmt.Errorf("%s: %q is not a boolean", key, value))
		return fallback
	}
	return parsed
}
