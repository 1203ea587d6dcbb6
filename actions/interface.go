package actions

import (
	"strings"
)

// ConfigGetterSetter stores default flag values; see config.File.
type ConfigGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
	GetAllKeys() ([]string, error)
}

// IsSecretKey reports whether a default flag value holds a password. DSNs may embed one.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	return strings.HasSuffix(k, "-pwd") || strings.HasSuffix(k, "-dsn") || strings.Contains(k, "password")
}
