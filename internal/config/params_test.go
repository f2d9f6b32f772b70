package config_test

import (
	"testing"

	"github.com/flocksim/swarmcore/internal/config"
)

func TestDefaultParamsValid(t *testing.T) {
	p := config.DefaultParams()
	if err := p.NormalizeAndValidate(); err != nil {
		t.Fatalf("default params should validate, got: %v", err)
	}
}

func TestNormalizeAndValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Params)
	}{
		{"negative agent count", func(p *config.Params) { p.Situation.NumberOfAgents = 0 }},
		{"zero delta t", func(p *config.Params) { p.Situation.DeltaT = 0 }},
		{"bad dim", func(p *config.Params) { p.Flocking.Dim = 4 }},
		{"bad flocking type", func(p *config.Params) { p.Unit.FlockingType = 9 }},
		{"bad arena shape", func(p *config.Params) { p.Flocking.ArenaShape = 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := config.DefaultParams()
			tt.mutate(&p)
			if err := p.NormalizeAndValidate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}
