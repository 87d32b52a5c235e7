package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	out, err := NormalizeMySQLDSN("yatube:secret@tcp(127.0.0.1:3306)/yatube")
	require.NoError(t, err)
	assert.Contains(t, out, "parseTime=true")
	assert.Contains(t, out, "charset=utf8mb4")
	assert.True(t, strings.HasPrefix(out, "yatube:secret@tcp(127.0.0.1:3306)/yatube"))
}

func TestNormalizeMySQLDSN_KeepsCharset(t *testing.T) {
	out, err := NormalizeMySQLDSN("u:p@tcp(db:3306)/blog?charset=latin1")
	require.NoError(t, err)
	assert.Contains(t, out, "charset=latin1")
	assert.NotContains(t, out, "utf8mb4")
}

func TestNormalizeMySQLDSN_Invalid(t *testing.T) {
	_, err := NormalizeMySQLDSN("u:p@tcp(db:3306)")
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	cases := []struct {
		driver string
		dsn    string
		name   string
		err    bool
	}{
		{driver: "mysql", dsn: "u:p@tcp(db:3306)/blog", name: "mysql"},
		{driver: "postgres", dsn: "host=db user=u dbname=blog", name: "postgres"},
		{driver: "sqlite", dsn: "file::memory:", name: "sqlite"},
		{driver: "oracle", dsn: "x", err: true},
	}
	for _, c := range cases {
		t.Run(c.driver, func(t *testing.T) {
			d, err := Dialector(c.driver, c.dsn)
			if c.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.name, d.Name())
		})
	}
}
