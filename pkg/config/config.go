package config

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/lrsetup/pkg/manifest"
)

// Config is the complete lrsetup configuration
type Config struct {
	Environment EnvironmentConfig `koanf:"environment" toml:"environment"`
	LeRobot     LeRobotConfig     `koanf:"lerobot" toml:"lerobot"`
	Manifest    ManifestConfig    `koanf:"manifest" toml:"manifest"`
	Auth        AuthConfig        `koanf:"auth" toml:"auth"`
	Secrets     SecretsConfig     `koanf:"secrets" toml:"secrets"`
	Camera      CameraConfig      `koanf:"camera" toml:"camera"`
}

// EnvironmentConfig controls host detection
type EnvironmentConfig struct {
	ColabRoot  string `koanf:"colab_root" toml:"colab_root"`
	VastRoot   string `koanf:"vast_root" toml:"vast_root"`
	Python     string `koanf:"python" toml:"python"`
	ProbeColab bool   `koanf:"probe_colab" toml:"probe_colab"`
}

// LeRobotConfig describes the upstream checkout and its installation
type LeRobotConfig struct {
	RepoURL       string   `koanf:"repo_url" toml:"repo_url"`
	Dir           string   `koanf:"dir" toml:"dir"`
	Manifest      string   `koanf:"manifest" toml:"manifest"`
	CloneDepth    int      `koanf:"clone_depth" toml:"clone_depth"`
	Pip           string   `koanf:"pip" toml:"pip"`
	ExtraPackages []string `koanf:"extra_packages" toml:"extra_packages"`
}

// ManifestConfig holds the rewrite table
type ManifestConfig struct {
	Rules manifest.Rules `koanf:"rules" toml:"rules"`
}

// AuthConfig names the service CLIs and notebook metadata
type AuthConfig struct {
	WandbCLI     string `koanf:"wandb_cli" toml:"wandb_cli"`
	NotebookName string `koanf:"notebook_name" toml:"notebook_name"`
}

// SecretsConfig lists dotenv files consulted for secrets, relative to the
// root dir unless absolute
type SecretsConfig struct {
	DotenvFiles []string `koanf:"dotenv_files" toml:"dotenv_files"`
}

// CameraConfig holds the V4L2 tool and the keywords identifying cameras
type CameraConfig struct {
	V4L2Ctl      string `koanf:"v4l2_ctl" toml:"v4l2_ctl"`
	TopKeyword   string `koanf:"top_keyword" toml:"top_keyword"`
	WristKeyword string `koanf:"wrist_keyword" toml:"wrist_keyword"`
}

// Validate checks invariants that decoding cannot express
func (c *Config) Validate() error {
	if c.LeRobot.RepoURL == "" {
		return fmt.Errorf("lerobot.repo_url must be set")
	}
	if c.LeRobot.Dir == "" {
		return fmt.Errorf("lerobot.dir must be set")
	}
	if c.LeRobot.CloneDepth < 0 {
		return fmt.Errorf("lerobot.clone_depth must not be negative")
	}
	if err := c.Manifest.Rules.Validate(); err != nil {
		return fmt.Errorf("manifest.rules: %w", err)
	}
	return nil
}

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
