package seed

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yi-nology/opsboard/pkg/constants"
)

func TestDeploymentParams(t *testing.T) {
	tests := []struct {
		infraType string
		want      string
	}{
		{constants.InfraTypeECS, `{"MIN_POD":1,"MAX_POD":5,"REQ_MEMORY":"1GB","LIMIT_MEMORY":"2GB","REQ_CPU":"100m","LIMIT_CPU":"250m"}`},
		{constants.InfraTypeLinux, `{"MAX_MEMORY":"2GB"}`},
		{constants.InfraTypeWindows, `{"MAX_MEMORY":"2GB"}`},
	}
	for _, tt := range tests {
		t.Run(tt.infraType, func(t *testing.T) {
			got, err := DeploymentParams(tt.infraType)
			if err != nil {
				t.Fatalf("DeploymentParams: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
			if !json.Valid(got) {
				t.Fatalf("params are not valid JSON: %s", got)
			}
		})
	}
}

func TestDeploymentParamsUnknownType(t *testing.T) {
	if _, err := DeploymentParams("mainframe"); !errors.Is(err, ErrUnsupportedInfraType) {
		t.Fatalf("expected ErrUnsupportedInfraType, got %v", err)
	}
}
