package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. It is loaded once in main and passed
// down explicitly; nothing in the app reaches for ambient configuration.
type Config struct {
	AppName string
	Env     string // DEV (default), TEST, QA, PROD
	Debug   bool
	Build   string

	// SecretKey signs the persisted session record. A stored record whose
	// signature does not verify is treated as absent.
	SecretKey []byte

	// SharedSecret is the single demo credential accepted for every
	// directory identity. A deliberately weak placeholder policy; a real
	// deployment replaces the whole credential check, not just this value.
	SharedSecret string

	// LoginLatency simulates the network round-trip of a credential check.
	LoginLatency time.Duration

	// SessionTTL is reserved; sessions currently never expire.
	SessionTTL time.Duration

	SessionFile string

	RollbarToken string

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
}

func (conf *Config) TestMode() bool { return conf.Env == "TEST" }

// NewConfig loads settings from defaults, an optional config/.env.<env>
// file and environment variables (prefixed with the env name).
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Darasa")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "v41u#yza(2l^-dq&0+up7=0e&k!mz0r8a9b_sj&dg7$wn%55x1")
	v.SetDefault("sharedSecret", "password")
	v.SetDefault("loginLatency", time.Second)
	v.SetDefault("sessionTTL", time.Duration(0))
	v.SetDefault("sessionFile", defaultSessionFile())
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	env = strings.ToUpper(env)
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		Build:        v.GetString("build"),
		SecretKey:    []byte(v.GetString("secretKey")),
		SharedSecret: v.GetString("sharedSecret"),
		LoginLatency: v.GetDuration("loginLatency"),
		SessionTTL:   v.GetDuration("sessionTTL"),
		SessionFile:  v.GetString("sessionFile"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	if conf.TestMode() {
		conf.LoginLatency = 0
	}
	return conf
}

// defaultSessionFile puts the session slot in the user's config dir,
// falling back to the working directory.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "darasa", "session")
}
