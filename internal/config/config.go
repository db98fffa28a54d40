package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTP struct {
	Addr         string
	RateLimitRPM int
	CORSOrigins  []string
}

type Upstream struct {
	URL       string
	Token     string
	Timeout   time.Duration
	PageLimit int
	MaxPages  int
}

type Cache struct {
	Cap       int
	TTL       time.Duration
	MaxOrders int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

type Audit struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

func (a Audit) Enabled() bool { return a.Host != "" }

// DSN builds a Postgres URL, safely escaping user/pass and query.
func (a Audit) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(a.User, a.Password),
		Host:   net.JoinHostPort(a.Host, a.Port),
		Path:   "/" + a.DB,
	}
	q := url.Values{}
	if a.SSLMode != "" {
		q.Set("sslmode", a.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type Config struct {
	HTTP     HTTP
	Upstream Upstream
	Cache    Cache
	Workers  int

	Kafka Kafka
	Audit Audit
}

// Load fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTP: HTTP{
			Addr:         envDefault("HTTP_ADDR", ":8081"),
			RateLimitRPM: envInt("RATE_LIMIT_RPM", 60),
			CORSOrigins:  splitCSV(envDefault("CORS_ORIGINS", "*")),
		},

		Upstream: Upstream{
			URL:       strings.TrimSpace(os.Getenv("UPSTREAM_URL")),
			Token:     strings.TrimSpace(os.Getenv("UPSTREAM_TOKEN")),
			Timeout:   envDurationMS("UPSTREAM_TIMEOUT", 10*time.Second),
			PageLimit: envInt("PAGE_LIMIT", 250),
			MaxPages:  envInt("LOOKUP_MAX_PAGES", 200),
		},

		Cache: Cache{
			Cap:       envInt("CACHE_CAP", 1000),
			TTL:       envDurationMS("CACHE_TTL", time.Hour),
			MaxOrders: envInt("CACHE_MAX_ORDERS", 1000),
		},

		Workers: envInt("LOOKUP_WORKERS", 5),

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(os.Getenv("LOOKUP_EVENTS_TOPIC")),
		},

		Audit: Audit{
			Host:     strings.TrimSpace(os.Getenv("AUDIT_PG_HOST")),
			Port:     strings.TrimSpace(envDefault("AUDIT_PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("AUDIT_PG_DB")),
			User:     strings.TrimSpace(os.Getenv("AUDIT_PG_USER")),
			Password: strings.TrimSpace(os.Getenv("AUDIT_PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("AUDIT_PG_SSLMODE", "disable")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	req := map[string]string{
		"UPSTREAM_URL":   c.Upstream.URL,
		"UPSTREAM_TOKEN": c.Upstream.Token,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if c.Cache.Cap <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.Cache.Cap)
		c.Cache.Cap = 1
	}
	if c.Workers <= 0 {
		log.Printf("LOOKUP_WORKERS is %d, adjusting to 1", c.Workers)
		c.Workers = 1
	}
	if c.Audit.Enabled() && (c.Audit.DB == "" || c.Audit.User == "") {
		return &missingEnvError{Keys: []string{"AUDIT_PG_DB", "AUDIT_PG_USER"}}
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
