// Package config handles run configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// CLI flags may override individual fields after loading.
package config
