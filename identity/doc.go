// Package identity materializes a one-time SSH identity on disk.
//
// An identity is a pair of ephemeral files under the system temp directory:
//   - a private key file holding the caller's key bytes (mode 0600 by default)
//   - a wrapper script referencing that key, suitable for GIT_SSH (mode 0755)
//
// Both files belong to a single request and are removed with Files.Remove.
//
// Example usage:
//
//	files, err := identity.WriteFiles(key, identity.WriteOptions{})
//	if err != nil {
//	    return err
//	}
//	defer files.Remove()
//
//	cmd.Env = append(cmd.Env, "GIT_SSH="+files.WrapperPath)
package identity
