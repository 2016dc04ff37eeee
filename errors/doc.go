/*
Package errors implements the coded errors used across the repository.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when necessary. It is best to define a new error
here if you feel it is going to be somewhat package-agnostic. The escrow
package is a good example of registering protocol specific codes.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf, or Wrap an existing
error. The code allows clients to distinguish error classes and act
accordingly.

There is also support for stacktraces. Please ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation
to attach a stacktrace. If you wrap multiple times, we only record the first
wrap with the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
for the error

	%s is just the error message
	%+v is the full stack trace
*/
package errors
