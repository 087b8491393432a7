package lrsetup

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Set up LeRobot on Colab, Vast.ai or a local machine"
	MsgDetectShort       = "Show the detected environment and root directory"
	MsgInstallShort      = "Clone, patch and pip install lerobot"
	MsgPatchShort        = "Relax the PyTorch pins of a pyproject.toml"
	MsgManifestShort     = "Inspect pyproject.toml manifests"
	MsgManifestShowShort = "List the dependencies of a manifest and the rule matching each"
	MsgLoginShort        = "Log in to Hugging Face and Weights & Biases"
	MsgSetupShort        = "Run detect, install and logins in one go"
	MsgCamerasShort      = "Find the top and wrist camera indices"
	MsgPortsShort        = "List serial ports and find SO-101 arms"
	MsgCmdShort          = "Print a copy-paste command block"
	MsgEnvShort          = "Print export lines for the setup environment"
	MsgConfigShort       = "Print the effective configuration"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"

	// Status messages
	MsgEnvironment    = "Environment: %s"
	MsgRootDir        = "Root dir:    %s"
	MsgRepoDir        = "Checkout:    %s"
	MsgDryRunNotice   = "DRY RUN MODE - No changes will be made"
	MsgTopCamera      = "Top camera index:   %d"
	MsgWristCamera    = "Wrist camera index: %d"
	MsgNoCameras      = "No video devices found."
	MsgNoPorts        = "No serial ports found."
	MsgArmFound       = "Found SO-101 arm on %s"
	MsgNoDeclarations = "No dependencies declared in %s."
	MsgSetupComplete  = "Setup complete."
	MsgSetupFailed    = "Setup finished with errors."

	// Error messages
	MsgErrReadManifest = "failed to read %s: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagRoot        = "Root directory (overrides environment detection)"
	MsgFlagConfig      = "Config file (replaces <root>/lrsetup.toml)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagSkipClone   = "Do not clone lerobot when it is missing"
	MsgFlagSkipInstall = "Do not run pip"
	MsgFlagSkipLogin   = "Do not log in to any service"
	MsgFlagWithSecrets = "Also export HF_TOKEN, WANDB_API_KEY and WANDB_NOTEBOOK_NAME"
	MsgFlagReveal      = "Print secret values instead of masking them"
	MsgFlagProbe       = "Probe each port for Feetech servos 1-6"
	MsgFlagDefaults    = "Print the built-in defaults instead of the effective configuration"
	MsgFlagTop         = "Keyword identifying the top camera"
	MsgFlagWrist       = "Keyword identifying the wrist camera"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/setup-long.txt
	msgSetupLongRaw string
	MsgSetupLong    = strings.TrimSpace(msgSetupLongRaw)

	//go:embed msgs/patch-long.txt
	msgPatchLongRaw string
	MsgPatchLong    = strings.TrimSpace(msgPatchLongRaw)
)
