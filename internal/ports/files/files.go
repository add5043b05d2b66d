package files

import "errors"

var ErrNotFound = errors.New("file not found")

// Resolver resuelve referencias de archivo guardadas en los registros
// (rutas locales o URLs). Las referencias son débiles: pueden no existir.
type Resolver interface {
	Exists(ref string) bool
	ReadBytes(ref string) ([]byte, error)
}
