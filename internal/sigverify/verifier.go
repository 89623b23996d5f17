// Package sigverify checks detached PGP signatures over data stream files.
package sigverify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// ErrBadSignature indicates the signature does not match the data or no
// imported key signed it.
var ErrBadSignature = errors.New("signature verification failed")

const armorHeader = "-----BEGIN PGP SIGNATURE---"

// Verifier validates detached signatures against an imported keyring.
type Verifier struct {
	keyring openpgp.EntityList
}

// ImportKeyFile adds the keys in the given file (armored or binary) to the
// keyring.
func (v *Verifier) ImportKeyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("rewind key file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("read key file: %w", err)
		}
	}
	if len(entities) == 0 {
		return errors.New("no keys found in key file")
	}
	v.keyring = append(v.keyring, entities...)
	return nil
}

// KeyCount returns the number of imported keys.
func (v *Verifier) KeyCount() int { return len(v.keyring) }

// VerifyFile checks the detached signature at sigPath over the file at
// dataPath. Armored and binary signatures are both accepted.
func (v *Verifier) VerifyFile(dataPath, sigPath string) error {
	if len(v.keyring) == 0 {
		return errors.New("no keys imported")
	}

	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("read signature file: %w", err)
	}
	data, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer data.Close()

	armored := len(sigData) >= len(armorHeader) && string(sigData[:len(armorHeader)]) == armorHeader
	if armored {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, data, bytes.NewReader(sigData), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, data, bytes.NewReader(sigData), nil)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}
