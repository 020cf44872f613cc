package keys

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// AppID names the application data directory.
const AppID = "com.sigillum.app"

// FileName is the name of the key pair file.
const FileName = "keypair.json"

// DefaultPath returns the key pair location in the user's application data
// directory: %APPDATA% on Windows, ~/Library/Application Support on macOS and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func DefaultPath() (string, error) {
	dir, err := dataDir(runtime.GOOS)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppID, FileName), nil
}

func dataDir(goos string) (string, error) {
	switch goos {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("%APPDATA% is not set")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
