package cmd

import (
	"errors"

	"github.com/khanhnv2901/sds-cli/internal/scap"
	"github.com/khanhnv2901/sds-cli/internal/sigverify"
	"github.com/khanhnv2901/sds-cli/internal/xccdf"
	"github.com/khanhnv2901/sds-cli/internal/xmlutil"
)

// Exit codes per error category. Success is 0; anything unclassified is 1.
const (
	exitGeneric   = 1
	exitParse     = 2
	exitIntegrity = 3
	exitNotFound  = 4
	exitSignature = 5
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, scap.ErrStreamNotFound),
		errors.Is(err, xccdf.ErrProfileNotFound):
		return exitNotFound
	case errors.Is(err, scap.ErrIntegrity),
		errors.Is(err, scap.ErrUnsupportedAlgorithm),
		errors.Is(err, scap.ErrMissingDigest),
		errors.Is(err, scap.ErrRemoteDisabled):
		return exitIntegrity
	case errors.Is(err, sigverify.ErrBadSignature):
		return exitSignature
	case errors.Is(err, scap.ErrUnexpectedRoot),
		errors.Is(err, scap.ErrDuplicateComponentID),
		errors.Is(err, scap.ErrDanglingReference),
		errors.Is(err, xccdf.ErrWrongComponentType),
		errors.Is(err, xccdf.ErrCyclicInheritance),
		errors.Is(err, xccdf.ErrDanglingProfile),
		errors.Is(err, xmlutil.ErrMissingAttr),
		errors.Is(err, xmlutil.ErrBadAttrValue):
		return exitParse
	}
	return exitGeneric
}
