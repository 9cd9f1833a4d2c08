// Package config manages user-level settings stored at ~/.pyforge/config.yaml,
// such as the default license key and the Python interpreter used by the
// build backend.
package config
