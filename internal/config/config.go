package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"hostdash/internal/redaction"
)

const (
	DefaultServerURL   = "https://localhost:8765"
	DefaultListenAddr  = "0.0.0.0:8765"
	DefaultCertFile    = "/app/cert/localhost.crt"
	DefaultKeyFile     = "/app/cert/localhost.key"
	DefaultFrontendDir = "frontend"
	DefaultLogLevel    = "info"
)

// Config holds both the server settings used by `hostdash serve` and the
// client settings used by the other commands.
type Config struct {
	// Client side.
	ServerURL string
	Insecure  bool

	// Server side.
	ListenAddr      string
	CertFile        string
	KeyFile         string
	FrontendDir     string
	CredentialsFile string
	LogLevel        string
	TrustProxy      bool
	// LogLimit is how many lines /api/system_logs returns. Zero means the
	// server default.
	LogLimit       int
	RedactionRules []redaction.Rule
}

type configFile struct {
	ServerURL       string           `json:"server_url,omitempty"`
	Insecure        bool             `json:"insecure,omitempty"`
	ListenAddr      string           `json:"listen_addr,omitempty"`
	CertFile        string           `json:"cert_file,omitempty"`
	KeyFile         string           `json:"key_file,omitempty"`
	FrontendDir     string           `json:"frontend_dir,omitempty"`
	CredentialsFile string           `json:"credentials_file,omitempty"`
	LogLevel        string           `json:"log_level,omitempty"`
	TrustProxy      bool             `json:"trust_proxy,omitempty"`
	LogLimit        int              `json:"log_limit,omitempty"`
	RedactionRules  []redaction.Rule `json:"redaction_rules,omitempty"`
}

// Dir returns ~/.config/hostdash, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".config", "hostdash")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func Defaults() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		ListenAddr:  DefaultListenAddr,
		CertFile:    DefaultCertFile,
		KeyFile:     DefaultKeyFile,
		FrontendDir: DefaultFrontendDir,
		LogLevel:    DefaultLogLevel,
	}
}

// LoadConfig merges defaults, the config file and the environment.
// Environment variables win over the file.
func LoadConfig() Config {
	cfg := LoadSaved()
	applyEnv(&cfg)
	return cfg
}

// LoadSaved merges defaults and the config file only. Commands that edit
// and save the config start from this so environment overrides are not
// written back.
func LoadSaved() Config {
	cfg := Defaults()

	if configPath, err := configPath(); err == nil {
		if data, err := os.ReadFile(configPath); err == nil {
			var fileCfg configFile
			if err := json.Unmarshal(data, &fileCfg); err == nil {
				applyFile(&cfg, fileCfg)
			}
		}
	}
	return cfg
}

func applyFile(cfg *Config, f configFile) {
	setString(&cfg.ServerURL, f.ServerURL)
	setString(&cfg.ListenAddr, f.ListenAddr)
	setString(&cfg.CertFile, f.CertFile)
	setString(&cfg.KeyFile, f.KeyFile)
	setString(&cfg.FrontendDir, f.FrontendDir)
	setString(&cfg.CredentialsFile, f.CredentialsFile)
	setString(&cfg.LogLevel, f.LogLevel)
	cfg.Insecure = f.Insecure
	cfg.TrustProxy = f.TrustProxy
	if f.LogLimit > 0 {
		cfg.LogLimit = f.LogLimit
	}
	cfg.RedactionRules = f.RedactionRules
}

func applyEnv(cfg *Config) {
	setString(&cfg.ServerURL, os.Getenv("HOSTDASH_URL"))
	setString(&cfg.ListenAddr, os.Getenv("HOSTDASH_LISTEN"))
	setString(&cfg.CertFile, os.Getenv("HOSTDASH_CERT_FILE"))
	setString(&cfg.KeyFile, os.Getenv("HOSTDASH_KEY_FILE"))
	setString(&cfg.FrontendDir, os.Getenv("HOSTDASH_FRONTEND_DIR"))
	setString(&cfg.CredentialsFile, os.Getenv("HOSTDASH_CREDENTIALS_FILE"))
	setString(&cfg.LogLevel, os.Getenv("HOSTDASH_LOG_LEVEL"))
	if v, err := strconv.ParseBool(os.Getenv("HOSTDASH_INSECURE")); err == nil {
		cfg.Insecure = v
	}
	if v, err := strconv.Atoi(os.Getenv("HOSTDASH_LOG_LIMIT")); err == nil && v > 0 {
		cfg.LogLimit = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func SaveConfig(cfg Config) error {
	configPath, err := configPath()
	if err != nil {
		return err
	}

	fileCfg := configFile{
		ServerURL:       cfg.ServerURL,
		Insecure:        cfg.Insecure,
		ListenAddr:      cfg.ListenAddr,
		CertFile:        cfg.CertFile,
		KeyFile:         cfg.KeyFile,
		FrontendDir:     cfg.FrontendDir,
		CredentialsFile: cfg.CredentialsFile,
		LogLevel:        cfg.LogLevel,
		TrustProxy:      cfg.TrustProxy,
		LogLimit:        cfg.LogLimit,
		RedactionRules:  cfg.RedactionRules,
	}

	data, err := json.MarshalIndent(fileCfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}
