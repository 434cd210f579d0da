//go:build purego

package storage

import (
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func sqliteDSN(path string) string {
	u := fileURL(path)
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
