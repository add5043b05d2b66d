package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	portfiles "vet-records/internal/ports/files"
)

// Local resuelve rutas del disco. Las rutas relativas se resuelven contra Root.
type Local struct {
	Root     string
	MaxBytes int64
}

func NewLocal(root string) *Local {
	return &Local{Root: root, MaxBytes: 10 << 20}
}

func (l *Local) path(ref string) string {
	ref = strings.TrimSpace(ref)
	if filepath.IsAbs(ref) || l.Root == "" {
		return filepath.Clean(ref)
	}
	return filepath.Join(l.Root, ref)
}

func (l *Local) Exists(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return false
	}
	st, err := os.Stat(l.path(ref))
	return err == nil && st.Mode().IsRegular()
}

func (l *Local) ReadBytes(ref string) ([]byte, error) {
	p := l.path(ref)
	st, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, portfiles.ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if l.MaxBytes > 0 && st.Size() > l.MaxBytes {
		return nil, fmt.Errorf("file %s too large (%d bytes)", p, st.Size())
	}
	return os.ReadFile(p)
}
