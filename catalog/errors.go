package catalog

import "github.com/pkg/errors"

// ExistsErrorf and MissingErrorf report catalog-level existence conflicts.
// They are plain wrapped errors rather than the analyzer's typed error
// kinds (analyzer.ExistsError/MissingError) since catalog sits below the
// analyzer and must not import it.
func ExistsErrorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

func MissingErrorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}
