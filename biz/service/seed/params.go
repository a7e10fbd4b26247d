package seed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yi-nology/opsboard/pkg/constants"
)

// ErrUnsupportedInfraType is returned when no parameter template exists for a type.
var ErrUnsupportedInfraType = errors.New("unsupported infra type")

type param struct {
	key   string
	value any
}

var (
	ecsParams = []param{
		{"MIN_POD", 1},
		{"MAX_POD", 5},
		{"REQ_MEMORY", "1GB"},
		{"LIMIT_MEMORY", "2GB"},
		{"REQ_CPU", "100m"},
		{"LIMIT_CPU", "250m"},
	}
	vmParams = []param{
		{"MAX_MEMORY", "2GB"},
	}
)

// DeploymentParams renders the parameter object of an infra type. Keys keep
// their template order; strings are quoted verbatim and numbers are bare.
func DeploymentParams(infraType string) ([]byte, error) {
	switch infraType {
	case constants.InfraTypeECS:
		return encodeParams(ecsParams)
	case constants.InfraTypeLinux, constants.InfraTypeWindows:
		return encodeParams(vmParams)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInfraType, infraType)
	}
}

func encodeParams(params []param) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + p.key + `":`)
		switch v := p.value.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			b.WriteString(`"` + v + `"`)
		default:
			return nil, fmt.Errorf("param %s: unsupported value type %T", p.key, v)
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
