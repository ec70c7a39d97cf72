package tools

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// GetRootFolder returns the folder holding the executable, or ICOCLOUD_WORKDIR when set.
func GetRootFolder() string {
	assetsFromEnv := os.Getenv("ICOCLOUD_WORKDIR")
	if assetsFromEnv != "" {
		return assetsFromEnv
	} else if strings.HasSuffix(os.Args[0], ".test") || strings.HasSuffix(os.Args[0], ".test.exe") {
		_, b, _, _ := runtime.Caller(0)
		return filepath.Dir(filepath.Dir(b))
	} else {
		ex, err := os.Executable()
		if err != nil {
			glog.Warningf("cannot retrieve executable directory: %v", err)
			return "."
		}
		return filepath.Dir(ex)
	}
}

func CreateDirectoryIfDoesNotExist(directory string) error {
	if directory == "" {
		return nil
	}
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return errors.Wrapf(err, "creating directory %s", directory)
		}
	}
	return nil
}

// FileExists reports whether path names an existing file or folder.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
