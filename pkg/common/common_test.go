package common

import (
	"context"
	"testing"
)

func TestVersionToNumberOrdersVersions(t *testing.T) {
	if VersionToNumber("1.10.0") <= VersionToNumber("1.9.9") {
		t.Fatalf("expected 1.10.0 to sort after 1.9.9")
	}
	if VersionToNumber("") != 0 {
		t.Fatalf("expected empty version to be 0")
	}
	if got := VersionToNumber("4.2.7"); got != 4_002_007 {
		t.Fatalf("unexpected number %d", got)
	}
	if got := VersionToNumber("3"); got != 3_000_000 {
		t.Fatalf("expected missing parts to count as zero, got %d", got)
	}
}

func TestParseCaller(t *testing.T) {
	c := ParseCaller(" 42 ", " operator ")
	if c.UserID != "42" || c.Role != "OPERATOR" {
		t.Fatalf("unexpected caller %+v", c)
	}
	if c.String() != "42/OPERATOR" {
		t.Fatalf("unexpected string %q", c.String())
	}
	if !ParseCaller("", "  ").IsZero() {
		t.Fatalf("expected zero caller")
	}
	if ParseCaller("", "viewer").String() != "-/VIEWER" {
		t.Fatalf("unexpected anonymous string")
	}
}

func TestCallerContext(t *testing.T) {
	ctx := ContextWithCaller(context.Background(), Caller{UserID: "7", Role: "OPERATOR"})

	caller, ok := CallerFrom(ctx)
	if !ok || caller.UserID != "7" {
		t.Fatalf("expected user 7, got %+v/%v", caller, ok)
	}
	if role := GetRole(ctx); role != "OPERATOR" {
		t.Fatalf("expected OPERATOR, got %q", role)
	}
	if _, ok := CallerFrom(context.Background()); ok {
		t.Fatalf("expected no caller in empty context")
	}
	if GetRole(context.Background()) != "" {
		t.Fatalf("expected empty role")
	}
}
