package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	tests := map[string]struct {
		status string
		want   bool
	}{
		"new":        {StatusNew, true},
		"read":       {StatusRead, true},
		"processing": {StatusProcessing, true},
		"closed":     {StatusClosed, true},
		"empty":      {"", false},
		"lowercase":  {"new", false},
		"unknown":    {"Archived", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidStatus(tc.status))
		})
	}
}
