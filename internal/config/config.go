// =============================================================================
// PyPSA to H2RES Export Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration: where the PyPSA-Eur
// resource files live, which cluster resolution they were built for, where
// the local spreadsheet inputs sit, and where the H2RES export files go.
//
// RESOLUTION ORDER:
//   1. Built-in defaults (the paths of the original Colab/Drive pipeline)
//   2. Optional YAML config file (--config)
//   3. Environment variables (DRIVE_PREFIX, CLUSTERS_SUFFIX,
//      H2RES_EXPORT_FOLDER), highest precedence
//
// A missing config file is not an error; the defaults plus the environment
// are a complete configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by the configuration.
const (
	EnvDrivePrefix    = "DRIVE_PREFIX"
	EnvClustersSuffix = "CLUSTERS_SUFFIX"
	EnvExportFolder   = "H2RES_EXPORT_FOLDER"
)

// Config holds every path the orchestrator needs.
type Config struct {
	// DrivePrefix is the directory holding the PyPSA-Eur resource files
	// (CSV and NetCDF inputs).
	DrivePrefix string `yaml:"drive_prefix"`

	// ClustersSuffix is the network cluster count baked into PyPSA-Eur
	// resource file names, e.g. "128" in
	// cop_profiles_base_s_128_2030.nc.
	ClustersSuffix string `yaml:"clusters_suffix"`

	// DataDir is the directory holding the local spreadsheet inputs.
	DataDir string `yaml:"data_dir"`

	// ExportDir is the directory the H2RES XML files are written to.
	// Created by the orchestrator if missing.
	ExportDir string `yaml:"export_dir"`
}

// Default returns the configuration of the original Drive-backed pipeline.
func Default() *Config {
	return &Config{
		DrivePrefix:    "/content/drive/MyDrive/pypsa-eur/resources",
		ClustersSuffix: "128",
		DataDir:        "./data",
		ExportDir:      "/content/h2res_export_folder",
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (ignored when absent), and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file; defaults plus environment apply.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the recognized environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDrivePrefix); v != "" {
		c.DrivePrefix = v
	}
	if v := os.Getenv(EnvClustersSuffix); v != "" {
		c.ClustersSuffix = v
	}
	if v := os.Getenv(EnvExportFolder); v != "" {
		c.ExportDir = v
	}
}

// =============================================================================
// PATH DERIVATION
// =============================================================================

// Resource returns the path of a PyPSA-Eur resource file under DrivePrefix.
func (c *Config) Resource(name string) string {
	return filepath.Join(c.DrivePrefix, name)
}

// ClusteredResource returns the path of a resource file whose name embeds
// the cluster suffix. The pattern must contain exactly one %s.
func (c *Config) ClusteredResource(pattern string) string {
	return filepath.Join(c.DrivePrefix, fmt.Sprintf(pattern, c.ClustersSuffix))
}

// DataFile returns the path of a local spreadsheet input under DataDir.
func (c *Config) DataFile(name string) string {
	return filepath.Join(c.DataDir, name)
}

// ExportFile returns the path of an output file under ExportDir.
func (c *Config) ExportFile(name string) string {
	return filepath.Join(c.ExportDir, name)
}
