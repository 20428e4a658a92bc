package dbtools

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// FailureKind classifies why a connection attempt did not reach a usable
// database.
type FailureKind string

const (
	FailureNone         FailureKind = "ok"
	FailureRefused      FailureKind = "connection_refused"
	FailureAccessDenied FailureKind = "access_denied"
	FailureHostNotFound FailureKind = "host_not_found"
	FailureUnknown      FailureKind = "unknown"
)

// Diagnosis pairs the failure class with operator guidance.
type Diagnosis struct {
	Kind   FailureKind
	Advice string
}

// Ping makes one connection attempt and classifies the outcome.
func Ping(db *gorm.DB, timeout time.Duration) Diagnosis {
	sqlDB, err := db.DB()
	if err != nil {
		return Classify(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return Classify(err)
	}

	return Diagnosis{Kind: FailureNone, Advice: "database is reachable"}
}

// Classify maps a connection error onto a failure class. Matching is done
// on error text because driver errors surface differently depending on
// where the attempt failed.
func Classify(err error) Diagnosis {
	if err == nil {
		return Diagnosis{Kind: FailureNone, Advice: "database is reachable"}
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused"):
		return Diagnosis{
			Kind:   FailureRefused,
			Advice: "server is not accepting connections: check that postgres is running and the port matches DB_PORT",
		}
	case strings.Contains(msg, "password authentication failed"),
		strings.Contains(msg, "access denied"),
		strings.Contains(msg, "role") && strings.Contains(msg, "does not exist"):
		return Diagnosis{
			Kind:   FailureAccessDenied,
			Advice: "credentials rejected: check DB_USER and DB_PASSWORD, and that the role exists",
		}
	case strings.Contains(msg, "no such host"),
		strings.Contains(msg, "server misbehaving"),
		strings.Contains(msg, "name resolution"):
		return Diagnosis{
			Kind:   FailureHostNotFound,
			Advice: "host could not be resolved: check DB_HOST spelling and DNS",
		}
	default:
		return Diagnosis{
			Kind:   FailureUnknown,
			Advice: "unclassified failure: " + err.Error(),
		}
	}
}
