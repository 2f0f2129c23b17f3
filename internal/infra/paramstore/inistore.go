// Package paramstore persists the last-used simulation parameters as a
// plain `name = value` text file so a user can resume or hand-edit a prior
// configuration.
package paramstore

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
)

const defaultFileName = "bhloop_params.ini"

// Recognized keys. Unknown keys in the file are ignored on load and missing
// keys fall back to defaults, so the format can grow without breaking older
// logs.
const (
	keyBs           = "saturation_flux_density"
	keyBr           = "remanence"
	keyHc           = "coercivity"
	keyHmax         = "field_amplitude"
	keyFrequency    = "frequency"
	keyShape        = "wave_shape"
	keySamples      = "samples_per_cycle"
	keyCycles       = "cycles"
	keyDiscard      = "discard_cycles"
	keyGapLength    = "gap_length"
	keyPathLength   = "path_length"
	keyCrossSection = "cross_section"
	keyTurns        = "turns"
)

type INIStore struct {
	path string
}

type Option func(*INIStore)

// WithFileName overrides the log file name (useful for tests).
func WithFileName(name string) Option {
	return func(s *INIStore) { s.path = filepath.Join(filepath.Dir(s.path), name) }
}

func New(root string, opts ...Option) *INIStore {
	s := &INIStore{path: filepath.Join(root, defaultFileName)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ParameterStore = (*INIStore)(nil)

// Path returns the location of the parameter log.
func (s *INIStore) Path() string { return s.path }

// Load reads the parameter log. A missing file is not an error: the first
// run proceeds with built-in defaults and found=false.
func (s *INIStore) Load() (domain.Params, bool, error) {
	p := domain.DefaultParams()

	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return p, false, nil
		}
		return p, false, &domain.OpError{
			Op:   "paramstore.stat",
			Kind: domain.KindNotFound,
			Path: s.path,
			Err:  err,
		}
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return p, false, &domain.OpError{
			Op:   "paramstore.load",
			Kind: domain.KindInvalidConfig,
			Path: s.path,
			Err:  err,
		}
	}

	sec := f.Section("")
	p.Bs = sec.Key(keyBs).MustFloat64(p.Bs)
	p.Br = sec.Key(keyBr).MustFloat64(p.Br)
	p.Hc = sec.Key(keyHc).MustFloat64(p.Hc)
	p.Hmax = sec.Key(keyHmax).MustFloat64(p.Hmax)
	p.Frequency = sec.Key(keyFrequency).MustFloat64(p.Frequency)
	p.SamplesPerCycle = sec.Key(keySamples).MustInt(p.SamplesPerCycle)
	p.Cycles = sec.Key(keyCycles).MustInt(p.Cycles)
	p.DiscardCycles = sec.Key(keyDiscard).MustInt(p.DiscardCycles)
	p.GapLength = sec.Key(keyGapLength).MustFloat64(p.GapLength)
	p.PathLength = sec.Key(keyPathLength).MustFloat64(p.PathLength)
	p.CrossSection = sec.Key(keyCrossSection).MustFloat64(p.CrossSection)
	p.Turns = sec.Key(keyTurns).MustInt(p.Turns)

	if raw := sec.Key(keyShape).String(); raw != "" {
		if shape, err := domain.ParseWaveShape(raw); err == nil {
			p.Shape = shape
		}
	}

	return p, true, nil
}

// Save overwrites the log atomically (write-to-temp-then-rename). A crash
// mid-write leaves the previous valid log untouched.
func (s *INIStore) Save(p domain.Params) error {
	f := ini.Empty()
	sec := f.Section("")

	sec.Key(keyBs).SetValue(fmtFloat(p.Bs))
	sec.Key(keyBr).SetValue(fmtFloat(p.Br))
	sec.Key(keyHc).SetValue(fmtFloat(p.Hc))
	sec.Key(keyHmax).SetValue(fmtFloat(p.Hmax))
	sec.Key(keyFrequency).SetValue(fmtFloat(p.Frequency))
	sec.Key(keyShape).SetValue(string(p.Shape))
	sec.Key(keySamples).SetValue(strconv.Itoa(p.SamplesPerCycle))
	sec.Key(keyCycles).SetValue(strconv.Itoa(p.Cycles))
	sec.Key(keyDiscard).SetValue(strconv.Itoa(p.DiscardCycles))
	sec.Key(keyGapLength).SetValue(fmtFloat(p.GapLength))
	sec.Key(keyPathLength).SetValue(fmtFloat(p.PathLength))
	sec.Key(keyCrossSection).SetValue(fmtFloat(p.CrossSection))
	sec.Key(keyTurns).SetValue(strconv.Itoa(p.Turns))

	tmp := s.path + ".tmp"
	if err := f.SaveTo(tmp); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "paramstore.write",
			Kind: domain.KindWrite,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "paramstore.rename",
			Kind: domain.KindWrite,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
