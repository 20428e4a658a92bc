package dbtools

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	script := `
-- header comment
INSERT INTO roles (name) VALUES ('admin');
INSERT INTO users (username, bio) VALUES ('jwan', 'likes; semicolons');

INSERT INTO users (username, bio) VALUES ('sara', 'it''s fine');
`

	statements := SplitStatements(script)

	assert.Len(t, statements, 3)
	assert.Equal(t, "INSERT INTO roles (name) VALUES ('admin')", statements[0])
	assert.Contains(t, statements[1], "likes; semicolons")
	assert.Contains(t, statements[2], "it''s fine")
}

func TestSplitStatementsDropsCommentOnlyChunks(t *testing.T) {
	statements := SplitStatements("-- only a comment;\n\n-- another;")
	assert.Empty(t, statements)
}

func TestSplitStatementsWithoutTrailingSemicolon(t *testing.T) {
	statements := SplitStatements("SELECT 1")
	assert.Equal(t, []string{"SELECT 1"}, statements)
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "aimrealty_export_20260830_140509.sql", ExportFileName(now))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureNone},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), FailureRefused},
		{"bad password", errors.New("FATAL: password authentication failed for user \"app\""), FailureAccessDenied},
		{"missing role", errors.New("FATAL: role \"nobody\" does not exist"), FailureAccessDenied},
		{"bad host", errors.New("dial tcp: lookup db.invalid: no such host"), FailureHostNotFound},
		{"other", errors.New("context deadline exceeded"), FailureUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diagnosis := Classify(tc.err)
			assert.Equal(t, tc.want, diagnosis.Kind)
			assert.NotEmpty(t, diagnosis.Advice)
		})
	}
}

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "NULL", renderValue(nil))
	assert.Equal(t, "TRUE", renderValue(true))
	assert.Equal(t, "42", renderValue(int64(42)))
	assert.Equal(t, "'o''brien'", renderValue("o'brien"))
	assert.Equal(t, "'2026-08-30 10:00:00'", renderValue(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)))
}
