package bench

import (
	"os"
)

// DirConfig controls the directory where the benchmark data will be generated.
type DirConfig interface {
	Get() (string, error)
}

// FixedDirConfig always returns a known path.
type FixedDirConfig struct {
	path string
}

func NewFixedDirConfig(path string) *FixedDirConfig {
	return &FixedDirConfig{path: path}
}

func (p *FixedDirConfig) Get() (string, error) {
	if err := os.MkdirAll(p.path, 0o777); err != nil {
		return "", err
	}

	return p.path, nil
}

// TmpDirConfig returns a temporary path that is generated on first use.
type TmpDirConfig struct {
	path string
}

func (t *TmpDirConfig) Get() (string, error) {
	if len(t.path) == 0 {
		path, err := os.MkdirTemp("", "kvbench-*")
		if err != nil {
			return "", err
		}

		t.path = path
	}

	return t.path, nil
}
