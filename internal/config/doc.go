// Package config defines the application's immutable configuration
// structures and loads them from the environment and optional config
// files. Configuration is loaded once at startup and passed explicitly
// to the components that need it; there is no global settings object.
package config
