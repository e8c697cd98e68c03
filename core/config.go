package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string

		AppName         string
		SecretKey       string
		FrontendBaseURL string
		RollbarToken    string

		// login policy
		SessionTimeout   time.Duration
		LockoutDuration  time.Duration
		MaxLoginAttempts int

		// local persistent area for session/demo artifacts
		DataDir string

		Server    ServerConfig
		Database  DatabaseConfig
		Redis     RedisConfig
		Bootstrap BootstrapConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      int
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	RedisConfig struct {
		Address  string
		Password string
		DB       int
	}

	// BootstrapConfig drives the one-time administrative bootstrap flow:
	// accounts in AdminEmails are lazily provisioned with TempPassword on
	// their first login attempt. This is a development convenience and must
	// stay disabled outside DEV environments.
	BootstrapConfig struct {
		Enabled      bool
		AdminEmails  []string
		TempPassword string
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables prefixed with the env name.
func NewConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Avocop")
	conf.SetDefault("secretKey", "x2m$0e)5l&^q-8#yj7tz+4vb@wgn9(r1u!dp3hk_c6fa*s%o")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("sessionTimeout", 8*time.Hour)
	conf.SetDefault("lockoutDuration", 15*time.Minute)
	conf.SetDefault("maxLoginAttempts", 5)
	conf.SetDefault("dataDir", filepath.Join(Getwd(), "data"))

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.port", 8000)
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "avocop")
	conf.SetDefault("database.user", "avocop")
	conf.SetDefault("database.password", "avocop")
	conf.SetDefault("database.adminUser", "")
	conf.SetDefault("database.adminPassword", "")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", 5432)
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("redis.address", "localhost:6379")
	conf.SetDefault("redis.password", "")
	conf.SetDefault("redis.db", 0)

	conf.SetDefault("bootstrap.adminEmails", []string{})
	conf.SetDefault("bootstrap.tempPassword", "TempPass123")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "QA", "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	conf.AutomaticEnv()

	// bootstrap follows debug unless explicitly set
	conf.SetDefault("bootstrap.enabled", conf.GetBool("debug"))

	c := &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          conf.GetString("appName"),
		SecretKey:        conf.GetString("secretKey"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		RollbarToken:     conf.GetString("rollbarToken"),
		SessionTimeout:   conf.GetDuration("sessionTimeout"),
		LockoutDuration:  conf.GetDuration("lockoutDuration"),
		MaxLoginAttempts: conf.GetInt("maxLoginAttempts"),
		DataDir:          conf.GetString("dataDir"),
		Server: ServerConfig{
			Host:                      conf.GetString("server.host"),
			Port:                      conf.GetInt("server.port"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetInt("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
		Redis: RedisConfig{
			Address:  conf.GetString("redis.address"),
			Password: conf.GetString("redis.password"),
			DB:       conf.GetInt("redis.db"),
		},
		Bootstrap: BootstrapConfig{
			Enabled:      conf.GetBool("bootstrap.enabled"),
			AdminEmails:  conf.GetStringSlice("bootstrap.adminEmails"),
			TempPassword: conf.GetString("bootstrap.tempPassword"),
		},
	}
	return c, nil
}
