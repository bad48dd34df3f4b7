package config

import (
	"strings"

	"gopkg.in/ini.v1"
)

// Vendor is a cloud storage provider.
type Vendor string

const (
	VendorAWS         Vendor = "aws"
	VendorSoftLayer   Vendor = "softlayer"
	VendorAzure       Vendor = "azure"
	VendorGoogleCloud Vendor = "googlecloud"
)

var knownVendors = []Vendor{
	VendorAWS,
	VendorSoftLayer,
	VendorAzure,
	VendorGoogleCloud,
}

// ParseVendor returns the vendor for the given identifier. Identifiers are
// case insensitive.
func ParseVendor(s string) (Vendor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range knownVendors {
		if string(v) == name {
			return v, nil
		}
	}
	return "", ErrUnknownVendor
}

// String returns the string representation of Vendor.
func (v Vendor) String() string {
	return string(v)
}

// credentials reads the vendor section of the credentials file.
func (v Vendor) credentials(cfg *ini.File) (Credentials, error) {
	switch v {
	case VendorAWS:
		section := cfg.Section(string(VendorAWS))
		return &AWSCredentials{
			AccessKeyID:     value(section, "aws_access_key_id", missingCredential),
			SecretAccessKey: value(section, "aws_secret_access_key", missingCredential),
			Region:          value(section, "region", ""),
		}, nil
	default:
		return nil, ErrUnsupportedVendor
	}
}

// Credentials are vendor specific secrets used to authenticate requests.
type Credentials interface {
	Vendor() Vendor
}

// AWSCredentials is an access key pair read from the aws section.
type AWSCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	// Region is optional. Empty means the SDK resolves it.
	Region string
}

// Vendor implements the Credentials interface.
func (*AWSCredentials) Vendor() Vendor {
	return VendorAWS
}
