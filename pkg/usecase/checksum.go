package usecase

import "regexp"

// actualHashPattern matches the line vcpkg prints when a download does not
// match the SHA512 declared in the portfile
var actualHashPattern = regexp.MustCompile(`Actual hash:\s+([0-9a-fA-F]+)`)

// ExtractChecksum returns the digest reported by a failed vcpkg download
func ExtractChecksum(output string) (string, bool) {
	m := actualHashPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}
