package version

import (
	"runtime"
	"testing"
)

func TestCurrent(t *testing.T) {
	if info := Current(); info.GoVersion != runtime.Version() || info.Version != AppVersion {
		t.Fatalf("unexpected info %+v", info)
	}

	SetCatalog("2024.1")
	if got := Current().Catalog; got != "2024.1" {
		t.Fatalf("expected catalog 2024.1, got %q", got)
	}
}
