package dbtools

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportResult tallies one import run.
type ImportResult struct {
	Succeeded int
	Failed    int
}

// Import executes the dump statement by statement. A failing statement is
// logged and skipped; the run always continues to the end.
func Import(db *gorm.DB, r io.Reader, logger *zap.SugaredLogger) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	for i, stmt := range SplitStatements(string(raw)) {
		if err := db.Exec(stmt).Error; err != nil {
			result.Failed++
			logger.Warnw("statement failed", "index", i+1, "error", err)
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

// SplitStatements cuts a SQL script into executable statements. Semicolons
// inside single-quoted literals do not terminate a statement; comment-only
// and blank fragments are dropped.
func SplitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(script); i++ {
		ch := script[i]

		if ch == '\'' {
			// A doubled quote inside a literal is an escaped quote.
			if inString && i+1 < len(script) && script[i+1] == '\'' {
				current.WriteByte(ch)
				current.WriteByte(script[i+1])
				i++
				continue
			}
			inString = !inString
			current.WriteByte(ch)
			continue
		}

		if ch == ';' && !inString {
			statements = appendStatement(statements, current.String())
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	return appendStatement(statements, current.String())
}

func appendStatement(statements []string, raw string) []string {
	stmt := stripComments(raw)
	if stmt == "" {
		return statements
	}
	return append(statements, stmt)
}

func stripComments(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
