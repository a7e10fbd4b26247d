package common

import (
	"context"
	"strconv"
	"strings"
)

// CommonResponse is the JSON envelope of every API response. The HTTP status
// stays 200 and the outcome is carried in Code.
type CommonResponse struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// VersionToNumber maps a release version (major.minor.patch) onto a sortable integer.
// Missing or non-numeric parts count as zero.
func VersionToNumber(version string) int64 {
	parts := strings.SplitN(version, ".", 3)
	var n int64
	for i := 0; i < 3; i++ {
		n *= 1_000
		if i < len(parts) {
			if v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64); err == nil {
				n += v
			}
		}
	}
	return n
}

// Caller identity headers. They are trusted as sent; nothing is authenticated.
const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-Role"
)

// Caller is who a request claims to come from.
type Caller struct {
	UserID string
	Role   string
}

// ParseCaller normalizes raw header values. Roles are matched upper-case.
func ParseCaller(userID, role string) Caller {
	return Caller{
		UserID: strings.TrimSpace(userID),
		Role:   strings.ToUpper(strings.TrimSpace(role)),
	}
}

// IsZero reports whether neither header was sent.
func (c Caller) IsZero() bool {
	return c.UserID == "" && c.Role == ""
}

func (c Caller) String() string {
	id := c.UserID
	if id == "" {
		id = "-"
	}
	if c.Role == "" {
		return id
	}
	return id + "/" + c.Role
}

type callerKey struct{}

// ContextWithCaller stores the caller into ctx.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored in ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}

// GetRole returns the caller's role or "".
func GetRole(ctx context.Context) string {
	caller, _ := CallerFrom(ctx)
	return caller.Role
}
