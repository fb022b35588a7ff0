// Package errors turns ssh and git failures into user-facing CLI errors.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common failures:
//   - ErrAuthFailed: The remote rejected the key
//   - ErrHostKey: Host key verification failed
//   - ErrHostUnreachable: The remote host could not be reached
//   - ErrRepoNotFound: The repository does not exist or is not visible
//   - ErrKeyRejected: ssh could not use the key file
//   - ErrToolMissing: git or ssh is not installed
//   - ErrTimeout: The command ran out of time
//
// Example usage:
//
//	res, err := runner.Run(ctx, req)
//	if err != nil {
//	    return errors.Wrap(err)
//	}
//
//	// Check error types
//	if errors.IsAuthError(err) {
//	    // Handle auth-related error
//	}
package errors
