// Package config provides configuration management for the trackhue
// application.
//
// It loads and validates the settings file in YAML format, writes defaults on
// first run, and builds the store and engine the settings describe.
package config
