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

type ServerConfig struct {
	Host                      string
	Addr                      string
	JWTExpirationDelta        time.Duration
	JWTRefreshExpirationDelta time.Duration
}

type Config struct {
	Env      string // DEV (default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	Build    string

	AppName   string
	SecretKey []byte

	// DataDir is where the key-value store keeps its JSON blobs.
	DataDir string

	// MockOTPCode is the fixed one-time code every login flow checks against.
	// There is no real OTP delivery in this system.
	MockOTPCode string

	RollbarToken string

	Server ServerConfig
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "ANS Portal")
	conf.SetDefault("secretKey", "q2w#x)celn$+57=dz&uoxh2(h!geu4h^$cahm9emy")
	conf.SetDefault("dataDir", filepath.Join(".", "data"))
	conf.SetDefault("mockOTPCode", "1234")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "dev")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		SecretKey:    []byte(conf.GetString("secretKey")),
		DataDir:      conf.GetString("dataDir"),
		MockOTPCode:  conf.GetString("mockOTPCode"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Addr:                      conf.GetString("serverAddr"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
	}
}
