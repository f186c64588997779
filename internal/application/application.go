package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "ghsecrets"

	// HomeEnv overrides the application directory when set
	HomeEnv = "GHSECRETS_HOME"

	// RegistryFileName is the bbolt file holding the profile registry
	RegistryFileName = "ghsecrets.bolt"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the ghsecrets configuration directory path.
// GHSECRETS_HOME wins when set.
// Linux: ~/.config/ghsecrets (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\ghsecrets (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// ProfilePath returns the default snapshot path for a profile name.
func ProfilePath(name string) (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "profiles", name+".yaml"), nil
}

// RegistryPath returns the path of the profile registry database.
func RegistryPath() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, RegistryFileName), nil
}

func lazyLoad() {
	if home := os.Getenv(HomeEnv); home != "" {
		appDir = home
		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
