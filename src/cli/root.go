// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bere23/dgc-lib/src/internal/helper/gc"
	"github.com/bere23/dgc-lib/src/logger"
)

var (
	// ErrVerificationFailed indicates that a message did not parse successfully
	// or its signature did not verify against the embedded signing certificate.
	ErrVerificationFailed = errors.New("cli: message verification failed")
)

// Execute runs the root command and returns any error that occurs during execution.
//
// The context is propagated to all subcommands, so cancelling it aborts any
// in-flight work.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "dgc-signer",
		Short:         "Certificate signing and distribution toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSignCmd(log),
		newVerifyCmd(log),
		newFingerprintCmd(log),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// readFile reads a whole file through the pooled buffer helper and returns a
// private copy of its contents.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

// writeOutput writes data to the output file, or through the logger when no
// output file is given.
func writeOutput(log logger.Logger, outputFile string, data []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		return nil
	}

	log.Printf("%s", data)
	return nil
}
