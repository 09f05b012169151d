package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	SessionTTL string `yaml:"session_ttl"`
}

// SecurityConfig is the settings surface the gate controller reads.
type SecurityConfig struct {
	AutoRelockDelay string `yaml:"auto_relock_delay"`
	FacialThreshold int    `yaml:"facial_threshold"`
}

type ApprovalsConfig struct {
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type VisionConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Security  SecurityConfig  `yaml:"security"`
	Approvals ApprovalsConfig `yaml:"approvals"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Vision    VisionConfig    `yaml:"vision"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	SessionTTL      time.Duration
	AutoRelockDelay time.Duration
	FacialThreshold int
	ResendWindow    time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	VisionEndpoint  string
	VisionAPIKey    string
	VisionTimeout   time.Duration
	CasbinModelPath string
}

// allowedRelockDelays matches the choices offered by the settings panel.
var allowedRelockDelays = map[time.Duration]bool{
	3 * time.Second:  true,
	5 * time.Second:  true,
	10 * time.Second: true,
	30 * time.Second: true,
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("GATESVC_CONFIG", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	sessTTL, err := time.ParseDuration(configFile.JWT.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	relockDelay, err := time.ParseDuration(configFile.Security.AutoRelockDelay)
	if err != nil {
		return nil, fmt.Errorf("invalid auto relock delay: %w", err)
	}
	if !allowedRelockDelays[relockDelay] {
		return nil, fmt.Errorf("auto relock delay must be one of 3s, 5s, 10s, 30s; got %s", relockDelay)
	}

	if t := configFile.Security.FacialThreshold; t < 50 || t > 99 {
		return nil, fmt.Errorf("facial threshold must be between 50 and 99; got %d", t)
	}

	resendWindow, err := time.ParseDuration(configFile.Approvals.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid approval resend window: %w", err)
	}

	visionTimeout := 10 * time.Second
	if configFile.Vision.Timeout != "" {
		visionTimeout, err = time.ParseDuration(configFile.Vision.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid vision timeout: %w", err)
		}
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("GATESVC_DSN", configFile.Database.DSN),
		RedisAddr:       env("GATESVC_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("GATESVC_JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		SessionTTL:      sessTTL,
		AutoRelockDelay: relockDelay,
		FacialThreshold: configFile.Security.FacialThreshold,
		ResendWindow:    resendWindow,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		VisionEndpoint:  env("GATESVC_VISION_ENDPOINT", configFile.Vision.Endpoint),
		VisionAPIKey:    env("GATESVC_VISION_API_KEY", configFile.Vision.APIKey),
		VisionTimeout:   visionTimeout,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
