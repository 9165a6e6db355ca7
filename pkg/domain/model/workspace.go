package model

import (
	"path/filepath"
)

// WorkingContext holds the two directories a release run operates on. It is
// passed to every component instead of changing the process working directory.
type WorkingContext struct {
	CloneDir     string // fresh clone of the package source repository
	RegistryRoot string // vcpkg installation, e.g. /usr/local/share/vcpkg
	Ref          string // branch or tag checked out in the clone
}

// PortsDir returns <clone>/Vcpkg/ports
func (wc WorkingContext) PortsDir() string {
	return filepath.Join(wc.CloneDir, "Vcpkg", "ports")
}

// ManifestPath returns <clone>/Vcpkg/ports/<name>/vcpkg.json
func (wc WorkingContext) ManifestPath(name string) string {
	return filepath.Join(wc.PortsDir(), name, "vcpkg.json")
}

// RecipePath returns <clone>/Vcpkg/ports/<name>/portfile.cmake
func (wc WorkingContext) RecipePath(name string) string {
	return filepath.Join(wc.PortsDir(), name, "portfile.cmake")
}

// VersionFilePath returns <clone>/Vcpkg/versions/<first letter>-/<name>.json
func (wc WorkingContext) VersionFilePath(name string) string {
	return filepath.Join(wc.CloneDir, "Vcpkg", versionFileRel(name))
}

// RegistryTool returns the path of the vcpkg executable
func (wc WorkingContext) RegistryTool() string {
	return filepath.Join(wc.RegistryRoot, "vcpkg")
}

// RegistryPortsDir returns <registry>/ports
func (wc WorkingContext) RegistryPortsDir() string {
	return filepath.Join(wc.RegistryRoot, "ports")
}

// RegistryPortDir returns <registry>/ports/<name>
func (wc WorkingContext) RegistryPortDir(name string) string {
	return filepath.Join(wc.RegistryPortsDir(), name)
}

// RegistryManifestPath returns <registry>/ports/<name>/vcpkg.json
func (wc WorkingContext) RegistryManifestPath(name string) string {
	return filepath.Join(wc.RegistryPortDir(name), "vcpkg.json")
}

// RegistryRecipePath returns <registry>/ports/<name>/portfile.cmake
func (wc WorkingContext) RegistryRecipePath(name string) string {
	return filepath.Join(wc.RegistryPortDir(name), "portfile.cmake")
}

// RegistryVersionFilePath returns <registry>/versions/<first letter>-/<name>.json
func (wc WorkingContext) RegistryVersionFilePath(name string) string {
	return filepath.Join(wc.RegistryRoot, versionFileRel(name))
}

// BuildLogPath returns the log vcpkg writes when installing name fails
func (wc WorkingContext) BuildLogPath(name, triplet string) string {
	return filepath.Join(wc.RegistryRoot, "buildtrees", name, "install-"+triplet+"-dbg-out.log")
}

func versionFileRel(name string) string {
	return filepath.Join("versions", name[:1]+"-", name+".json")
}
