package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/lookerci/contentcheck/internal/faults"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".contentcheck.yaml"

// PathEnv overrides the config file location.
const PathEnv = "CONTENTCHECK_CONFIG"

// DefaultMarker is the hidden comment that identifies a previously posted report.
const DefaultMarker = "<!-- content_validator_ci_message -->"

// Config represents the contentcheck configuration.
type Config struct {
	Branch string       `yaml:"branch,omitempty" env:"CI_MERGE_REQUEST_SOURCE_BRANCH_NAME" env-description:"branch to check out and validate"`
	Looker LookerConfig `yaml:"looker"`
	GitLab GitLabConfig `yaml:"gitlab"`
	Report ReportConfig `yaml:"report"`
	Log    LogConfig    `yaml:"log"`
}

// LookerConfig describes the Looker instance to validate against.
type LookerConfig struct {
	BaseURL      string        `yaml:"base_url,omitempty" env:"LOOKERSDK_BASE_URL" env-description:"Looker API base URL including port, e.g. https://example.looker.com:19999"`
	ClientID     string        `yaml:"client_id,omitempty" env:"LOOKERSDK_CLIENT_ID" env-description:"Looker API client id"`
	ClientSecret string        `yaml:"client_secret,omitempty" env:"LOOKERSDK_CLIENT_SECRET" env-description:"Looker API client secret"`
	APIVersion   string        `yaml:"api_version" env:"LOOKERSDK_API_VERSION" env-description:"Looker API version"`
	Project      string        `yaml:"project" env:"LOOKER_PROJECT" env-description:"LookML project whose branch is checked out"`
	Workspace    string        `yaml:"workspace" env:"LOOKER_WORKSPACE" env-description:"session workspace used for validation"`
	Timeout      time.Duration `yaml:"timeout" env:"LOOKERSDK_TIMEOUT" env-description:"HTTP timeout for Looker calls"`
}

// GitLabConfig describes the merge request the report is posted to.
type GitLabConfig struct {
	URL             string `yaml:"url" env:"CI_API_V4_URL" env-description:"GitLab API v4 URL"`
	Token           string `yaml:"token,omitempty" env:"GITLAB_API_TOKEN" env-description:"GitLab token with api scope"`
	ProjectID       string `yaml:"project_id,omitempty" env:"CI_PROJECT_ID" env-description:"GitLab project id or path"`
	MergeRequestIID int    `yaml:"merge_request_iid,omitempty" env:"CI_MERGE_REQUEST_IID" env-description:"merge request IID"`
}

// ReportConfig controls rendering.
type ReportConfig struct {
	Template       string `yaml:"template" env:"CONTENTCHECK_TEMPLATE" env-description:"path to the comment template"`
	Marker         string `yaml:"marker" env:"CONTENTCHECK_MARKER" env-description:"hidden marker identifying the report note"`
	ContentBaseURL string `yaml:"content_base_url,omitempty" env:"CONTENTCHECK_CONTENT_BASE_URL" env-description:"web URL for content links (default: base URL without port)"`
	Format         string `yaml:"format" env:"CONTENTCHECK_FORMAT" env-description:"local output format: markdown, json, text"`
}

// LogConfig controls logging.
type LogConfig struct {
	Env   string `yaml:"env" env:"CONTENTCHECK_LOG_ENV" env-description:"log handler: local, dev, prod"`
	Level string `yaml:"level" env:"CONTENTCHECK_LOG_LEVEL" env-description:"log level: debug, info, warn, error"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Looker: LookerConfig{
			APIVersion: "4.0",
			Project:    "reports",
			Workspace:  "dev",
			Timeout:    10 * time.Minute,
		},
		GitLab: GitLabConfig{
			URL: "https://gitlab.com/api/v4",
		},
		Report: ReportConfig{
			Template: "gitlab-ci/comment.template.md",
			Marker:   DefaultMarker,
			Format:   "markdown",
		},
		Log: LogConfig{
			Env:   "local",
			Level: "info",
		},
	}
}

// ResolvePath picks the config file: flag, then $CONTENTCHECK_CONFIG, then
// DefaultFile. explicit is false only for the DefaultFile fallback, which may
// be absent.
func ResolvePath(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if v := os.Getenv(PathEnv); v != "" {
		return v, true
	}
	return DefaultFile, false
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-empty values are applied).
func Load(path string, explicit bool, overrides map[string]string) (Config, error) {
	cfg := Default()

	useFile := path != ""
	if useFile {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) || explicit {
				return Config{}, faults.Configuration(fmt.Sprintf("config file %s", path), err)
			}
			useFile = false
		}
	}

	if useFile {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, faults.Configuration(fmt.Sprintf("reading config file %s", path), err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, faults.Configuration("reading environment", err)
	}

	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	cfg.Looker.BaseURL = strings.TrimSpace(cfg.Looker.BaseURL)
	cfg.GitLab.URL = strings.TrimRight(cfg.GitLab.URL, "/")
	return cfg, nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return faults.Configuration("applying flag", err)
		}
	}
	return nil
}

// Save writes the config as YAML.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadFile reads only the YAML file, without defaults or environment.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Keys lists every key accepted by SetField.
var Keys = []string{
	"branch",
	"looker.base_url", "looker.client_id", "looker.client_secret", "looker.api_version",
	"looker.project", "looker.workspace", "looker.timeout",
	"gitlab.url", "gitlab.token", "gitlab.project_id", "gitlab.merge_request_iid",
	"report.template", "report.marker", "report.content_base_url", "report.format",
	"log.env", "log.level",
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "branch":
		cfg.Branch = value
	case "looker.base_url":
		cfg.Looker.BaseURL = value
	case "looker.client_id":
		cfg.Looker.ClientID = value
	case "looker.client_secret":
		cfg.Looker.ClientSecret = value
	case "looker.api_version":
		cfg.Looker.APIVersion = value
	case "looker.project":
		cfg.Looker.Project = value
	case "looker.workspace":
		cfg.Looker.Workspace = value
	case "looker.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("looker.timeout must be a duration: %w", err)
		}
		cfg.Looker.Timeout = d
	case "gitlab.url":
		cfg.GitLab.URL = value
	case "gitlab.token":
		cfg.GitLab.Token = value
	case "gitlab.project_id":
		cfg.GitLab.ProjectID = value
	case "gitlab.merge_request_iid":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("gitlab.merge_request_iid must be an integer: %w", err)
		}
		cfg.GitLab.MergeRequestIID = n
	case "report.template":
		cfg.Report.Template = value
	case "report.marker":
		cfg.Report.Marker = value
	case "report.content_base_url":
		cfg.Report.ContentBaseURL = value
	case "report.format":
		cfg.Report.Format = value
	case "log.env":
		cfg.Log.Env = value
	case "log.level":
		cfg.Log.Level = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// EnvUsage writes the environment variables contentcheck reads.
func EnvUsage(w io.Writer) {
	var cfg Config
	header := "Environment variables:"
	cleanenv.FUsage(w, &cfg, &header)()
}
