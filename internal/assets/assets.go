// Package assets prepares the output directory and writes the site's static
// assets: user-provided files copied from the assets source directory plus the
// generated style.css and script.js.
package assets

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/logfields"
	"git.home.luguber.info/inful/autosite/internal/templates"
)

// DirName is the assets directory inside the output directory.
const DirName = "assets"

var fontExtensions = []string{".ttf", ".otf", ".woff", ".woff2"}

// Manager owns the output directory layout for static assets.
type Manager struct {
	outputDir string
	sourceDir string
}

// NewManager creates a Manager copying custom assets from sourceDir.
func NewManager(outputDir, sourceDir string) *Manager {
	return &Manager{outputDir: outputDir, sourceDir: sourceDir}
}

// OutputDir returns <output>/assets.
func (m *Manager) OutputDir() string {
	return filepath.Join(m.outputDir, DirName)
}

// SetupOutputDirectory removes any previous output and recreates the
// output and assets directories.
func (m *Manager) SetupOutputDirectory() error {
	if clean := filepath.Clean(m.outputDir); m.outputDir == "" || clean == "/" || clean == "." {
		return errors.ValidationError("refusing to reset output directory").
			WithContext("path", m.outputDir).Build()
	}
	if err := os.RemoveAll(m.outputDir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clear output directory").
			Fatal().WithContext("path", m.outputDir).Build()
	}
	// #nosec G301 -- the output tree is served publicly
	if err := os.MkdirAll(m.OutputDir(), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			Fatal().WithContext("path", m.OutputDir()).Build()
	}
	return nil
}

// CopyCustomAssets copies the top-level files and directories of the source
// assets directory into <output>/assets. A missing source directory yields a
// warning-severity error; callers log it and continue.
func (m *Manager) CopyCustomAssets() (int, error) {
	entries, err := os.ReadDir(m.sourceDir)
	if os.IsNotExist(err) {
		return 0, errors.NotFoundError("assets directory not found").
			WithContext("path", m.sourceDir).Build()
	}
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to read assets directory").
			WithContext("path", m.sourceDir).Build()
	}

	copied := 0
	for _, entry := range entries {
		src := filepath.Join(m.sourceDir, entry.Name())
		dst := filepath.Join(m.OutputDir(), entry.Name())

		if entry.IsDir() {
			if err := CopyDir(src, dst); err != nil {
				return copied, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy asset directory").
					WithContext("path", src).Build()
			}
			slog.Debug("Copied asset directory", logfields.Path(entry.Name()))
			copied++
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return copied, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy asset").
				WithContext("path", src).Build()
		}
		kind := "asset"
		if isFont(entry.Name()) {
			kind = "font"
		}
		slog.Debug("Copied "+kind, logfields.Path(entry.Name()))
		copied++
	}
	return copied, nil
}

// GenerateStylesheet writes assets/style.css for theme.
func (m *Manager) GenerateStylesheet(theme config.ThemeConfig) error {
	css, err := templates.Stylesheet(templates.Theme{
		FontFamily:    theme.FontFamily,
		PrimaryColor:  theme.PrimaryColor,
		ContrastColor: theme.ContrastColor,
	})
	if err != nil {
		return err
	}
	return m.write("style.css", css)
}

// GenerateScript writes assets/script.js.
func (m *Manager) GenerateScript() error {
	return m.write("script.js", templates.Script())
}

func (m *Manager) write(name string, data []byte) error {
	path := filepath.Join(m.OutputDir(), name)
	// #nosec G306 -- static assets are public
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write asset").
			Fatal().WithContext("path", path).Build()
	}
	return nil
}

func isFont(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, f := range fontExtensions {
		if ext == f {
			return true
		}
	}
	return false
}

// CopyDir recursively copies a directory tree.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file from src to dst, keeping its permissions.
func copyFile(src, dst string) error {
	// #nosec G304 -- src comes from the configured assets directory.
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	// #nosec G304 -- dst is under the output directory.
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
