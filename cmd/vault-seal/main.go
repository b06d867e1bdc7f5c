// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// vault-seal seals and unseals files with a vault built from a master
// secret. It is a thin command-line surface over the vault library for
// operators and scripts; services embed the library directly.
//
// The master secret is read from a file (or stdin with -secret -) and
// never appears in process arguments. Envelopes are written in the
// compact binary layout by default, or as JSON with -text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/vault"
	"github.com/bureau-foundation/vault/lib/secret"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "seal":
		return runSeal(os.Args[2:])
	case "unseal":
		return runUnseal(os.Args[2:])
	case "fingerprint":
		return runFingerprint(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: vault-seal <subcommand> [flags]

Subcommands:
  seal         Seal plaintext into an envelope
  unseal       Unseal an envelope back into plaintext
  fingerprint  Print the vault fingerprint for the given inputs

Run 'vault-seal <subcommand> --help' for subcommand flags.
`)
}

// vaultParams holds the flags shared by every subcommand: the
// derivation inputs and the cipher selection.
type vaultParams struct {
	secretPath string
	salt       string
	nodeID     string
	cipherName string
}

func (params *vaultParams) register(flags *flag.FlagSet) {
	hostname, _ := os.Hostname()
	flags.StringVar(&params.secretPath, "secret", "", "path to the master secret file, or '-' for stdin")
	flags.StringVar(&params.salt, "salt", "", "derivation salt (uniquifies keys across environments)")
	flags.StringVar(&params.nodeID, "node-id", hostname, "node identifier for the local domain (default: hostname)")
	flags.StringVar(&params.cipherName, "cipher", vault.CipherAESGCM.String(), "cipher suite: aes256-gcm or chacha20-poly1305")
}

// buildVault derives a vault from the shared flags. The master secret
// buffer is wiped before returning — the vault holds only derived
// keys.
func (params *vaultParams) buildVault(compression vault.Compression) (*vault.Vault, error) {
	if params.secretPath == "" {
		return nil, fmt.Errorf("-secret is required")
	}
	if params.salt == "" {
		return nil, fmt.Errorf("-salt is required")
	}

	cipherID, err := vault.ParseCipherID(params.cipherName)
	if err != nil {
		return nil, err
	}

	masterSecret, err := secret.ReadMasterSecret(params.secretPath)
	if err != nil {
		return nil, err
	}
	defer masterSecret.Close()

	return vault.NewBuilder().
		Keys(masterSecret.Bytes(), []byte(params.salt), []byte(params.nodeID)).
		Cipher(cipherID).
		Compression(compression).
		Build()
}

func runSeal(args []string) error {
	flags := flag.NewFlagSet("seal", flag.ContinueOnError)
	var params vaultParams
	params.register(flags)
	domainName := flags.String("domain", vault.DomainLocal.String(), "key domain: local or fleet")
	context := flags.String("context", "", "authentication context bound to the envelope")
	compressName := flags.String("compress", vault.CompressionNone.String(), "compression codec: none, lz4, or zstd")
	inputPath := flags.String("in", "-", "plaintext input file, or '-' for stdin")
	outputPath := flags.String("out", "-", "envelope output file, or '-' for stdout")
	textForm := flags.Bool("text", false, "write the envelope as JSON instead of binary")
	if err := flags.Parse(args); err != nil {
		return err
	}

	domain, err := vault.ParseDomain(*domainName)
	if err != nil {
		return err
	}
	compression, err := vault.ParseCompression(*compressName)
	if err != nil {
		return err
	}

	v, err := params.buildVault(compression)
	if err != nil {
		return err
	}
	defer v.Close()

	plaintext, err := readInput(*inputPath)
	if err != nil {
		return fmt.Errorf("reading plaintext: %w", err)
	}

	envelope, err := v.SealBytes(domain, []byte(*context), plaintext)
	if err != nil {
		return err
	}

	var output []byte
	if *textForm {
		output, err = json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return err
		}
		output = append(output, '\n')
	} else {
		output, err = envelope.MarshalBinary()
		if err != nil {
			return err
		}
	}
	return writeOutput(*outputPath, output)
}

func runUnseal(args []string) error {
	flags := flag.NewFlagSet("unseal", flag.ContinueOnError)
	var params vaultParams
	params.register(flags)
	domainName := flags.String("domain", vault.DomainLocal.String(), "key domain: local or fleet")
	context := flags.String("context", "", "authentication context the envelope was sealed with")
	inputPath := flags.String("in", "-", "envelope input file, or '-' for stdin")
	outputPath := flags.String("out", "-", "plaintext output file, or '-' for stdout")
	textForm := flags.Bool("text", false, "read the envelope as JSON instead of binary")
	if err := flags.Parse(args); err != nil {
		return err
	}

	domain, err := vault.ParseDomain(*domainName)
	if err != nil {
		return err
	}

	// Compression at unseal is dictated by the envelope, not a flag.
	v, err := params.buildVault(vault.CompressionNone)
	if err != nil {
		return err
	}
	defer v.Close()

	raw, err := readInput(*inputPath)
	if err != nil {
		return fmt.Errorf("reading envelope: %w", err)
	}

	var envelope vault.Envelope
	if *textForm {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("parsing envelope: %w", err)
		}
	} else {
		if err := envelope.UnmarshalBinary(raw); err != nil {
			return fmt.Errorf("parsing envelope: %w", err)
		}
	}

	plaintext, err := v.UnsealBytes(domain, []byte(*context), &envelope)
	if err != nil {
		return err
	}
	return writeOutput(*outputPath, plaintext)
}

func runFingerprint(args []string) error {
	flags := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	var params vaultParams
	params.register(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	v, err := params.buildVault(vault.CompressionNone)
	if err != nil {
		return err
	}
	defer v.Close()

	fmt.Println(v.Fingerprint())
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}
