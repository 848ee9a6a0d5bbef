package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePathValidator validates the configuration and log file paths.
type FilePathValidator struct {
	// AllowedBaseDirs restricts file operations to specific base directories.
	// Empty means any directory.
	AllowedBaseDirs []string
	// AllowRelativePaths keeps relative paths relative instead of resolving them
	AllowRelativePaths bool
	// MaxPathLength is the maximum allowed path length
	MaxPathLength int
}

// NewFilePathValidator restricts paths to the application's own
// directories and the system temp dir.
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".seek"),
			filepath.Join(homeDir, ".config", "seek"),
			os.TempDir(),
		},
		AllowRelativePaths: false,
		MaxPathLength:      4096,
	}
}

// NewPermissiveFilePathValidator accepts any location that passes the
// character and traversal checks.
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowedBaseDirs:    []string{},
		AllowRelativePaths: true,
		MaxPathLength:      4096,
	}
}

// ValidateAndSanitize validates path and returns its cleaned form with a
// leading "~/" expanded.
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if strings.Contains(path, "\x00") {
		return "", fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return "", fmt.Errorf("path contains control characters")
		}
	}

	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ".." {
			return "", fmt.Errorf("directory traversal not allowed")
		}
	}

	normalized, err := v.normalize(path)
	if err != nil {
		return "", err
	}

	if err := v.checkBaseDirs(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func (v *FilePathValidator) normalize(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage")
	}

	if !v.AllowRelativePaths && !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}
	return filepath.Clean(path), nil
}

func (v *FilePathValidator) checkBaseDirs(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path: %w", err)
	}

	for _, baseDir := range v.AllowedBaseDirs {
		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
	}

	return fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
}

// ValidateFile validates path and, when it exists, requires it to be a
// regular file rather than a directory.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	validated, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(validated); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", validated)
	}
	return validated, nil
}

// PathHandler resolves the application's file locations.
type PathHandler struct {
	validator *FilePathValidator
}

func NewSecurePathHandler() *PathHandler {
	return &PathHandler{validator: NewFilePathValidator()}
}

func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{validator: NewPermissiveFilePathValidator()}
}

// ConfigPath returns a validated configuration file path, defaulting to
// ~/.config/seek/config.toml.
func (ph *PathHandler) ConfigPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".config", "seek", "config.toml")
	}
	return ph.validator.ValidateFile(userPath)
}

// LogPath returns a validated log file path, defaulting to ~/.seek/seek.log.
// The parent directory is created.
func (ph *PathHandler) LogPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".seek", "seek.log")
	}

	validated, err := ph.validator.ValidateFile(userPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(validated), 0o755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return validated, nil
}
