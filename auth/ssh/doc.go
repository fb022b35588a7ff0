// Package ssh inspects SSH private keys handed to gitane.
//
// Key material is never logged. InspectPrivateKey derives the public half of
// a key so callers can log its type and SHA256 fingerprint instead:
//
//	info, err := ssh.InspectPrivateKey(keyBytes)
//	if err == nil {
//	    logger.Debug("using identity", "key", info)
//	}
//
// FindDefaultKey locates the user's default private key in ~/.ssh, which the
// CLI uses when no key file is given:
//
//	path, err := ssh.FindDefaultKey(ssh.Config{})
package ssh
