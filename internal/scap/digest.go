package scap

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Algorithm identifies a digest algorithm declared by a component catalog
// entry. The value is data-driven: it comes from the document, not from
// configuration, so unknown names must fail hard instead of skipping
// verification.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// ParseAlgorithm normalizes a catalog-declared algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sha256", "sha-256":
		return AlgorithmSHA256, nil
	case "sha512", "sha-512":
		return AlgorithmSHA512, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

func (a Algorithm) String() string { return string(a) }

// DisplayName returns the conventional upper-case label for console output.
func (a Algorithm) DisplayName() string { return strings.ToUpper(string(a)) }

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case AlgorithmSHA512:
		return sha512.New()
	default:
		return sha256.New()
	}
}

// Digest computes the hex-encoded digest of raw using the algorithm.
func (a Algorithm) Digest(raw []byte) string {
	h := a.newHash()
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyDigest checks raw against the expected hex digest computed with the
// named algorithm. It is a pure function: same inputs, same outcome.
func VerifyDigest(raw []byte, algorithm, expected string) error {
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	actual := algo.Digest(raw)
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: %s mismatch, expected %s, got %s",
			ErrIntegrity, algo.DisplayName(), expected, actual)
	}
	return nil
}
