package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSQLIgnoresQuotedSemicolons(t *testing.T) {
	statements := splitSQL("CREATE TABLE a (x String DEFAULT ';');\nINSERT INTO a VALUES ('it\\'s;');\n")

	var nonEmpty []string
	for _, stmt := range statements {
		if s := strings.TrimSpace(stmt); s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	assert.Equal(t, []string{
		"CREATE TABLE a (x String DEFAULT ';')",
		"INSERT INTO a VALUES ('it\\'s;')",
	}, nonEmpty)
}
