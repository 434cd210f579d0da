//go:build !purego

package storage

import (
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

func sqliteDSN(path string) string {
	u := fileURL(path)
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_busy_timeout", "5000")
	q.Set("_foreign_keys", "on")
	u.RawQuery = q.Encode()
	return u.String()
}
