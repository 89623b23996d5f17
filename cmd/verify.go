package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/sds-cli/internal/sigverify"
)

var (
	verifySigPath string
	verifyKeyPath string
)

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Verify a detached PGP signature over a data stream file",
	Long: `Check that a SCAP source data stream file matches a detached PGP
signature from a trusted publisher key. Both armored and binary
signatures are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var v sigverify.Verifier
		if err := v.ImportKeyFile(verifyKeyPath); err != nil {
			return err
		}
		logger.Debugw("keyring loaded", "keys", v.KeyCount())

		if err := v.VerifyFile(args[0], verifySigPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", colorSuccess("Good signature:"), args[0])
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifySigPath, "signature", "", "detached signature file")
	verifyCmd.Flags().StringVar(&verifyKeyPath, "key", "", "publisher public key file")
	_ = verifyCmd.MarkFlagRequired("signature")
	_ = verifyCmd.MarkFlagRequired("key")
}
