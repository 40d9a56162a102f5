package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all callouts configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Likes  LikesConfig  `yaml:"likes"`
	Events EventsConfig `yaml:"events"`
	Client ClientConfig `yaml:"client"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// StoreConfig selects where the server-side collection is persisted.
type StoreConfig struct {
	Backend       string `yaml:"backend"` // file, mongo
	DataFile      string `yaml:"data_file"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	SeedSamples   bool   `yaml:"seed_samples"`
}

// LikesConfig selects where per-session liked sets live.
type LikesConfig struct {
	Backend       string        `yaml:"backend"` // memory, redis
	RedisURL      string        `yaml:"redis_url"` // redis:// URL, takes precedence over the fields below
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

type EventsConfig struct {
	NatsURL string `yaml:"nats_url"` // empty disables publishing
}

// ClientConfig is used by the terminal client's local copy.
type ClientConfig struct {
	Home string `yaml:"home"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Server: ServerConfig{
			Port:         3000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Store: StoreConfig{
			Backend:       BackendFile,
			DataFile:      filepath.Join("data", "callouts.json"),
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "callouts",
			SeedSamples:   true,
		},
		Likes: LikesConfig{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       30 * 24 * time.Hour,
		},
		Client: ClientConfig{
			Home: filepath.Join(home, ".callouts"),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads defaults, then the YAML file at path if it exists, then
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		c.Store.DataFile = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		c.Store.MongoDatabase = v
	}
	if v := os.Getenv("SEED_SAMPLES"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			c.Store.SeedSamples = seed
		}
	}
	if v := os.Getenv("LIKES_BACKEND"); v != "" {
		c.Likes.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Likes.RedisURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Likes.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Likes.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Likes.RedisDB = db
		}
	}
	if v := os.Getenv("LIKES_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			c.Likes.TTL = ttl
		}
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.Events.NatsURL = v
	}
	if v := os.Getenv("CALLOUTS_HOME"); v != "" {
		c.Client.Home = v
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.DataFile == "" {
			return errors.New("store.data_file is required for the file backend")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("store.mongo_uri and store.mongo_database are required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Likes.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown likes backend %q", c.Likes.Backend)
	}
	return nil
}

// ClientDataFile is the client's callout collection.
func (c *Config) ClientDataFile() string {
	return filepath.Join(c.Client.Home, "callouts.json")
}

// ClientLikesFile is the client's liked-set document.
func (c *Config) ClientLikesFile() string {
	return filepath.Join(c.Client.Home, "likes.json")
}
