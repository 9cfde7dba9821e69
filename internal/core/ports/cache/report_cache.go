package cache

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// ReportCache stores computed reports per owner.
type ReportCache interface {
	// Get decodes the cached value into dest. The bool is false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// InvalidateUser drops every report cached for the owner.
	InvalidateUser(ctx context.Context, userEmail string) error
}

// UserPrefix returns the prefix shared by every key of an owner.
func UserPrefix(userEmail string) string {
	return "reports:" + strings.ToLower(userEmail) + ":"
}

// Key builds reports:<email>:<report>.
func Key(userEmail, report string) string {
	return UserPrefix(userEmail) + report
}

// MonthKey builds reports:<email>:<report>:<yyyy-mm>.
func MonthKey(userEmail, report string, ym domain.YearMonth) string {
	return Key(userEmail, report) + ":" + ym.String()
}
