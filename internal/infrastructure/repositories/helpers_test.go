package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		matric_no TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		hostel_name TEXT,
		room_number TEXT,
		role TEXT NOT NULL DEFAULT 'student',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createComplaintTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE complaints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		evidence_file TEXT DEFAULT 'default.jpg',
		status TEXT DEFAULT 'Pending',
		created_at DATETIME,
		resolved_at DATETIME,
		user_id INTEGER NOT NULL REFERENCES users(id)
	);`)
}
