package secrets

import (
	"context"
	"strings"

	"github.com/arthur-debert/lrsetup/pkg/runner"
)

// colabScript prints a userdata secret. The key is passed as an argument
// so it is never interpolated into Python source.
const colabScript = "import sys\n" +
	"from google.colab import userdata\n" +
	"try:\n" +
	"    print(userdata.get(sys.argv[1]))\n" +
	"except Exception:\n" +
	"    sys.exit(3)\n"

// colabMissingExit is the status the script exits with when the secret is
// absent or access was not granted
const colabMissingExit = 3

// ColabProvider reads Colab notebook secrets (google.colab.userdata)
// through the Python interpreter
type ColabProvider struct {
	Runner runner.Runner
	Python string
}

// NewColabProvider creates a provider using the given interpreter
func NewColabProvider(r runner.Runner, python string) *ColabProvider {
	if python == "" {
		python = "python3"
	}
	return &ColabProvider{Runner: r, Python: python}
}

func (p *ColabProvider) Name() string { return "colab" }

func (p *ColabProvider) Lookup(ctx context.Context, key string) (string, bool, error) {
	res, err := p.Runner.Run(ctx, runner.Command{
		Name:      p.Python,
		Args:      []string{"-c", colabScript, key},
		Quiet:     true,
		Sensitive: true,
	})
	if err != nil {
		if res.ExitCode == colabMissingExit {
			return "", false, nil
		}
		return "", false, err
	}
	value := strings.TrimSpace(res.Stdout)
	return value, value != "", nil
}

var _ Provider = (*ColabProvider)(nil)
