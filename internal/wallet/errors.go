package wallet

import "errors"

var ErrInvalidAddress = errors.New("address is not a valid ed25519 public key")
