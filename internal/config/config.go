// Package config loads client configuration from environment variables,
// typically populated from a .env file by the entrypoints.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/prefs"
)

// Config aggregates every tunable of the client.
type Config struct {
	API    APIConfig
	Speech SpeechConfig
	App    AppConfig
}

// Load reads the full configuration from the environment.
func Load() (*Config, error) {
	api, err := loadAPIConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	app, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	return &Config{API: api, Speech: speech, App: app}, nil
}

// APIConfig points at the Krishi Sakhi REST backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

func loadAPIConfig() (APIConfig, error) {
	timeout := 60 * time.Second
	if override, err := parseOptionalIntEnv("KRISHI_API_TIMEOUT"); err != nil {
		return APIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return APIConfig{}, fmt.Errorf("invalid KRISHI_API_TIMEOUT value %d: must be positive seconds", *override)
		}
		timeout = time.Duration(*override) * time.Second
	}

	return APIConfig{
		BaseURL: getEnvOrDefault("KRISHI_API_BASE_URL", "http://127.0.0.1:5000/api"),
		Timeout: timeout,
	}, nil
}

// SpeechConfig describes the streaming speech-recognition gateway. When no
// gateway URL is set, voice input is reported as unsupported and the rest
// of the client keeps working.
type SpeechConfig struct {
	GatewayURL  string // websocket endpoint, e.g. wss://host/asr
	AppID       string
	AccessToken string
	SampleRate  int
	Timeout     time.Duration
	Enabled     bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("KRISHI_SPEECH_TIMEOUT"); err != nil {
		return SpeechConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
	}

	sampleRate := 16000
	if override, err := parseOptionalIntEnv("KRISHI_SPEECH_SAMPLE_RATE"); err != nil {
		return SpeechConfig{}, err
	} else if override != nil {
		sampleRate = *override
	}

	gatewayURL := strings.TrimSpace(os.Getenv("KRISHI_SPEECH_GATEWAY_URL"))

	return SpeechConfig{
		GatewayURL:  gatewayURL,
		AppID:       strings.TrimSpace(os.Getenv("KRISHI_SPEECH_APP_ID")),
		AccessToken: strings.TrimSpace(os.Getenv("KRISHI_SPEECH_ACCESS_TOKEN")),
		SampleRate:  sampleRate,
		Timeout:     time.Duration(timeoutSeconds) * time.Second,
		Enabled:     gatewayURL != "",
	}, nil
}

// AppConfig holds UI-level settings that are not part of the persisted
// preferences file.
type AppConfig struct {
	Location  string // default dashboard location
	PrefsPath string // path of the preferences file
	MockAddr  string // listen address for the bundled stub backend
}

func loadAppConfig() (AppConfig, error) {
	prefsPath := strings.TrimSpace(os.Getenv("KRISHI_PREFS_PATH"))
	if prefsPath == "" {
		var err error
		prefsPath, err = prefs.DefaultPath()
		if err != nil {
			return AppConfig{}, fmt.Errorf("resolve preferences path: %w", err)
		}
	}

	addr := getEnvOrDefault("KRISHI_MOCK_PORT", "5000")
	if !strings.Contains(addr, ":") {
		if strings.Contains(addr, " ") {
			return AppConfig{}, fmt.Errorf("invalid KRISHI_MOCK_PORT value: %q", addr)
		}
		addr = ":" + addr
	}

	return AppConfig{
		Location:  getEnvOrDefault("KRISHI_LOCATION", "Kochi"),
		PrefsPath: prefsPath,
		MockAddr:  addr,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
