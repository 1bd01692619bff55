// Package config loads and validates YAML configuration for the HIST
// tools. Values are layered: file contents, then defaults for anything
// unset, then validation. ${VAR} references in the file are expanded from
// the environment at load time.
package config
