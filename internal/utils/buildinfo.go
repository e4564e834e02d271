// Package utils provides helper functions, including version retrieval.
package utils

import (
	"runtime/debug"
)

// ApplicationVersion is the release version compiled into codic.
const ApplicationVersion = "2.4.0"

const developmentVersion = "(devel)"

// GetApplicationVersion reports the version of the running binary.
// Module build info wins when the binary was installed from a tagged module;
// otherwise the compiled-in ApplicationVersion is returned.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	return ApplicationVersion
}
