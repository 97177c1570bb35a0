package filewrap

import "errors"

var errTooShort = errors.New("ciphertext shorter than one nonce")
