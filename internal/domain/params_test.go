package domain

import "testing"

func TestDefaultParams_Valid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params must validate, got: %v", err)
	}
}

func TestValidate_RejectsBadParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero saturation", func(p *Params) { p.Bs = 0 }},
		{"negative saturation", func(p *Params) { p.Bs = -1.5 }},
		{"zero remanence", func(p *Params) { p.Br = 0 }},
		{"saturation equals remanence", func(p *Params) { p.Br = p.Bs }},
		{"remanence above saturation", func(p *Params) { p.Br = p.Bs + 0.1 }},
		{"zero coercivity", func(p *Params) { p.Hc = 0 }},
		{"zero amplitude", func(p *Params) { p.Hmax = 0 }},
		{"zero frequency", func(p *Params) { p.Frequency = 0 }},
		{"negative frequency", func(p *Params) { p.Frequency = -50 }},
		{"unknown shape", func(p *Params) { p.Shape = "square" }},
		{"too few samples", func(p *Params) { p.SamplesPerCycle = 4 }},
		{"zero cycles", func(p *Params) { p.Cycles = 0 }},
		{"negative discard", func(p *Params) { p.DiscardCycles = -1 }},
		{"negative gap", func(p *Params) { p.GapLength = -1e-3 }},
		{"zero path length", func(p *Params) { p.PathLength = 0 }},
		{"zero cross-section", func(p *Params) { p.CrossSection = 0 }},
		{"zero turns", func(p *Params) { p.Turns = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !IsKind(err, KindInvalidParameter) {
				t.Fatalf("expected kind=%s, got err=%v", KindInvalidParameter, err)
			}
		})
	}
}

func TestParseWaveShape(t *testing.T) {
	cases := []struct {
		input   string
		want    WaveShape
		wantErr bool
	}{
		{"sine", ShapeSine, false},
		{"SINE", ShapeSine, false},
		{" triangle ", ShapeTriangle, false},
		{"square", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseWaveShape(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseWaveShape(%q): expected error", c.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWaveShape(%q): unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseWaveShape(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
