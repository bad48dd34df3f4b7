// Package config loads per-user transfer settings from the credentials file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// DefaultPartnerName is used when the credentials file has no partner.
	DefaultPartnerName = "partner"

	// DefaultEncryptionKey is the hex encoded key used when none is set.
	DefaultEncryptionKey = "0000"

	// DefaultUploadPrefix is used when the credentials file has no upload
	// prefix.
	DefaultUploadPrefix = "not-set"

	// DefaultBucket is the bucket objects are transferred to and from.
	DefaultBucket = "mtp-cloudstorage"

	// EncryptionAlgorithm is the server side encryption algorithm used with
	// the customer provided key.
	EncryptionAlgorithm = "AES256"

	// missingCredential is the value of a vendor credential which is not
	// present in the credentials file.
	missingCredential = "missing"

	defaultSection = "default"
)

// EnvCredentialsFile overrides the location of the credentials file.
const EnvCredentialsFile = "WANNA_CREDENTIALS_FILE"

var (
	// ErrUnknownVendor is returned for a vendor identifier that is not
	// recognized at all.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrUnsupportedVendor is returned for a recognized vendor which has no
	// client implementation.
	ErrUnsupportedVendor = errors.New("vendor is not supported")

	// ErrInvalidEncryptionKey is returned when encryption_key is not a valid
	// hex string.
	ErrInvalidEncryptionKey = errors.New("encryption key is not a valid hex string")
)

// Error is a configuration error.
type Error struct {
	// Vendor is the vendor identifier as it was given.
	Vendor string
	// Path is the credentials file that was read.
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Vendor == "" {
		return fmt.Sprintf("config %v: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %v: vendor %q: %v", e.Path, e.Vendor, e.Err)
}

// Unwrap unwraps the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Settings holds everything a single transfer needs to know about the user.
// It is built once by Load and is never modified afterwards.
type Settings struct {
	PartnerName         string
	EncryptionKey       []byte
	EncryptionAlgorithm string
	UploadPrefix        string
	Bucket              string
	Vendor              Vendor
	Credentials         Credentials
}

// DefaultPath returns the location of the credentials file. The location
// can be overridden with WANNA_CREDENTIALS_FILE.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvCredentialsFile); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wanna", "credentials"), nil
}

// Load reads the credentials file at path and builds the settings for the
// given vendor. A missing file is not an error, every setting falls back to
// its default in that case.
func Load(path string, vendorName string) (*Settings, error) {
	vendor, err := ParseVendor(vendorName)
	if err != nil {
		return nil, &Error{Vendor: vendorName, Path: path, Err: err}
	}

	// values are kept as written: '#' and ';' only start a comment at the
	// beginning of a line and quotes are not stripped.
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	section := cfg.Section(defaultSection)

	key, err := decodeKey(value(section, "encryption_key", DefaultEncryptionKey))
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	credentials, err := vendor.credentials(cfg)
	if err != nil {
		return nil, &Error{Vendor: vendorName, Path: path, Err: err}
	}

	return &Settings{
		PartnerName:         value(section, "partner", DefaultPartnerName),
		EncryptionKey:       key,
		EncryptionAlgorithm: EncryptionAlgorithm,
		UploadPrefix:        value(section, "upload_prefix", DefaultUploadPrefix),
		Bucket:              value(section, "bucket", DefaultBucket),
		Vendor:              vendor,
		Credentials:         credentials,
	}, nil
}

// value returns the value of key in section, or def if the key is absent.
// A key present with an empty value yields the empty string.
func value(section *ini.Section, key, def string) string {
	if !section.HasKey(key) {
		return def
	}
	return section.Key(key).String()
}

func decodeKey(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncryptionKey, err)
	}
	return key, nil
}
