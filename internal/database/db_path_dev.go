//go:build !prod

package database

// GetDefaultDBPath keeps development data next to the working directory.
func GetDefaultDBPath() string {
	return dbFileName
}

func IsDevelopment() bool {
	return true
}
