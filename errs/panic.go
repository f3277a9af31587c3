package errs

import "errors"

// IsProgrammingError returns whether err indicates a bug in the code driving
// the backend rather than a failure of the input or the native library.
func IsProgrammingError(err error) bool {
	return errors.Is(err, ErrInvalidHandle) ||
		errors.Is(err, ErrBuilderNotPositioned) ||
		errors.Is(err, ErrLibraryVersionMismatch)
}

// Fail panics with err.  It is used for programming errors only: recoverable
// failures are returned.
func Fail(err error) {
	panic(err)
}

// Catch runs fn and converts a programming-error panic raised inside it into a
// returned error.  Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok && IsProgrammingError(perr) {
				err = perr
				return
			}

			panic(r)
		}
	}()

	fn()
	return
}
