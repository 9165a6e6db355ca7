package model

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ChecksumPlaceholder is the SHA512 value written into the recipe before the
// real digest is known. It never matches a real digest, so the registry tool
// fails and reports the actual hash.
const ChecksumPlaceholder = "0"

// sha512DigestPattern matches a hex-encoded SHA512 digest
var sha512DigestPattern = regexp.MustCompile(`^[0-9a-fA-F]{128}$`)

// Checksum is the SHA512 state of the source archive: either unknown
// (rendered as the placeholder) or a verified hex digest.
type Checksum struct {
	digest string
}

// UnknownChecksum returns the placeholder state
func UnknownChecksum() Checksum {
	return Checksum{}
}

// VerifiedChecksum returns a verified checksum for a hex SHA512 digest. The
// placeholder and digests of any other length are rejected.
func VerifiedChecksum(digest string) (Checksum, error) {
	if !sha512DigestPattern.MatchString(digest) {
		return Checksum{}, goerr.New("checksum is not a hex SHA512 digest", goerr.V("digest", digest))
	}
	return Checksum{digest: digest}, nil
}

// IsVerified reports whether the checksum holds a real digest
func (c Checksum) IsVerified() bool {
	return c.digest != ""
}

// Digest returns the hex digest, or an empty string while unknown
func (c Checksum) Digest() string {
	return c.digest
}

// String returns the value written into the recipe's SHA512 field
func (c Checksum) String() string {
	if !c.IsVerified() {
		return ChecksumPlaceholder
	}
	return c.digest
}
