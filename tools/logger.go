package tools

import (
	"fmt"

	"github.com/golang/glog"
)

var isEnabled = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func IsLoggerEnabled() bool {
	return isEnabled
}

// LogOutput reports a user facing message through glog, unless disabled by --silent.
func LogOutput(val ...interface{}) {
	if isEnabled {
		glog.InfoDepth(1, fmt.Sprintln(val...))
	}
}
