package cli

import "github.com/heiervang-technologies/supercompact/internal/cerrors"

// openErrToIoError wraps a failed os.Open/os.Create into the typed IoError
// the rest of the CLI's exit-code mapping expects.
func openErrToIoError(path string, err error) error {
	return cerrors.NewIoError(path, "failed to open", err)
}
