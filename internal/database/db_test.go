package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := Options{User: "pcm", Pass: "s3cret", Host: "db", Port: "3306", Name: "pcm"}.DSN()
	assert.Contains(t, dsn, "pcm:s3cret@tcp(db:3306)/pcm?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	// no password, no colon
	dsn = Options{User: "root", Host: "127.0.0.1", Port: "3306", Name: "pcm"}.DSN()
	assert.Contains(t, dsn, "root@tcp(127.0.0.1:3306)/pcm?")
}
