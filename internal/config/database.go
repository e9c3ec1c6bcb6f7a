// internal/config/database.go
package config

import (
	"fmt"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// Target identifies the database without credentials, for logs.
func (d *DatabaseConfig) Target() string {
	return fmt.Sprintf("%s@%s:%s/%s (%s)", d.User, d.Host, d.Port, d.Database, d.Driver)
}
