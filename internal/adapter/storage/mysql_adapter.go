package storage

import (
	"database/sql"
)

var mysqlStatements = sqlStatements{
	schema: `
		CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
			k VARCHAR(191) NOT NULL PRIMARY KEY,
			v LONGBLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
	get: `SELECT v FROM ` + kvTable + ` WHERE k = ?`,
	upsert: `
		INSERT INTO ` + kvTable + ` (k, v) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = NOW()`,
	insertIfNew: `INSERT IGNORE INTO ` + kvTable + ` (k, v) VALUES (?, ?)`,
	delete:      `DELETE FROM ` + kvTable + ` WHERE k = ?`,
}

type MySQLAdapter struct {
	sqlKV
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{sqlKV{db: db, stmts: mysqlStatements}}
}
