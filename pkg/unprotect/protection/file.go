package protection

import (
	"fmt"
	"os"

	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
)

// writeFile is replaced in tests to simulate partial writes.
var writeFile = os.WriteFile

// StripFile applies s to the worksheet part at path and rewrites it only
// when something was removed. It returns the removed element texts. If the
// write fails the original bytes are written back before the error is
// returned.
func StripFile(path string, s Stripper) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text, removed := s.StripMatches(string(original))
	if len(removed) == 0 {
		return nil, nil
	}

	if err := writeFile(path, []byte(text), info.Mode().Perm()); err != nil {
		if rerr := writeFile(path, original, info.Mode().Perm()); rerr != nil {
			return nil, fmt.Errorf("write %s: %w (restore failed: %v)", path, err, rerr)
		}
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return removed, nil
}

// InspectFile reads the worksheet part at path and inspects it.
func InspectFile(path string, s Stripper) ([]models.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Inspect(string(data)), nil
}
