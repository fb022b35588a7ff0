package errors

import "errors"

// IsAuthError checks if an error is an authentication failure: the key was
// refused, could not be loaded, or the host key did not verify.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrKeyRejected) || errors.Is(err, ErrHostKey) {
		return true
	}

	switch Classify(err) {
	case ErrAuthFailed, ErrKeyRejected, ErrHostKey:
		return true
	}
	return false
}

// IsConnectionError checks if an error is connection-related, including
// timeouts.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrHostUnreachable) || errors.Is(err, ErrTimeout) {
		return true
	}

	switch Classify(err) {
	case ErrHostUnreachable, ErrTimeout:
		return true
	}
	return false
}

// IsRepoError checks if an error is about a missing repository.
func IsRepoError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrRepoNotFound) || Classify(err) == ErrRepoNotFound
}
