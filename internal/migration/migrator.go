// Package migration upgrades older pathscribe config files to the
// current schema version. Migration is best-effort: failures warn and
// leave the original file untouched.
package migration

import (
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pathscribe/internal/config"
)

// legacyVersion is assumed for config files written before the schema
// carried a version field.
const legacyVersion = "1.0.0"

// NeedsMigration reports whether the config file at path predates the
// current schema version.
func NeedsMigration(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading config: %w", err)
	}

	var header struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return false, fmt.Errorf("parsing config: %w", err)
	}
	if header.Version == "" {
		header.Version = legacyVersion
	}

	fileVer, err := semver.NewVersion(header.Version)
	if err != nil {
		return false, fmt.Errorf("parsing config version %q: %w", header.Version, err)
	}
	currentVer := semver.MustParse(config.CurrentSchemaVersion)

	return fileVer.LessThan(currentVer), nil
}

// RunMigration upgrades the user's config file in place when it predates
// the current schema. The original file is preserved as config.yaml.bak.
// A missing or already-current config file is a no-op.
func RunMigration(out io.Writer) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	return RunMigrationAt(out, path)
}

// RunMigrationAt is RunMigration for an explicit config path, used by
// tests.
func RunMigrationAt(out io.Writer, path string) error {
	needed, err := NeedsMigration(path)
	if err != nil || !needed {
		return err
	}

	// Re-reading through LoadFrom fills any fields the old schema
	// lacked with current defaults; Duration fields accept the old
	// bare-seconds notation.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config for migration: %w", err)
	}
	cfg.Version = config.CurrentSchemaVersion

	backup := path + ".bak"
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backing up config: %w", err)
	}
	if err := os.WriteFile(backup, data, 0600); err != nil {
		return fmt.Errorf("writing config backup: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Upgraded config to schema %s (previous file kept at %s)\n",
		config.CurrentSchemaVersion, backup)
	return nil
}
