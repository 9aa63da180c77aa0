package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPrivateKey is returned by ToInterface when the peer's key
	// holds only a public key. A client interface cannot operate without
	// its own private key.
	ErrMissingPrivateKey = errors.New("peer key holds no private key")

	// ErrServerKeyUnavailable is returned by ToInterface when the server
	// interface has no private key to derive a companion public key from.
	ErrServerKeyUnavailable = errors.New("server interface has no usable key material")
)

// MissingFieldError reports a required builder field that was never set.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// InvalidSettingError reports an obfuscation parameter outside its valid
// range.
type InvalidSettingError struct {
	Setting string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid obfuscation setting: %s", e.Setting)
}
