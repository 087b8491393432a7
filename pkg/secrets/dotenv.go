package secrets

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/knadh/koanf/parsers/dotenv"

	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/types"
)

// DotenvProvider reads secrets from dotenv files. Files are parsed on the
// first lookup; the first file defining a key wins. Missing files are
// ignored.
type DotenvProvider struct {
	fs    types.FS
	files []string

	once   sync.Once
	values []map[string]interface{}
	err    error
}

// NewDotenvProvider creates a provider over the given files, in priority
// order
func NewDotenvProvider(fsys types.FS, files ...string) *DotenvProvider {
	return &DotenvProvider{fs: fsys, files: files}
}

func (p *DotenvProvider) Name() string { return "dotenv" }

// Files returns the files consulted, in priority order
func (p *DotenvProvider) Files() []string { return p.files }

func (p *DotenvProvider) Lookup(_ context.Context, key string) (string, bool, error) {
	p.once.Do(p.load)
	if p.err != nil {
		return "", false, p.err
	}
	for _, values := range p.values {
		if v, ok := values[key]; ok {
			return fmt.Sprint(v), true, nil
		}
	}
	return "", false, nil
}

func (p *DotenvProvider) load() {
	logger := logging.GetLogger("secrets.dotenv")
	parser := dotenv.Parser()

	for _, path := range p.files {
		data, err := p.fs.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
				continue
			}
			p.err = errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
			return
		}
		values, err := parser.Unmarshal(data)
		if err != nil {
			p.err = errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path).
				WithDetail("path", path)
			return
		}
		logger.Debug().Str("path", path).Int("keys", len(values)).Msg("Loaded dotenv file")
		p.values = append(p.values, values)
	}
}

var _ Provider = (*DotenvProvider)(nil)
