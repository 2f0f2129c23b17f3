package ports

import "github.com/DYK-Team/Chan-BH-loop-model/internal/domain"

// ParameterStore persists the last-used parameter set between invocations.
type ParameterStore interface {
	// Load returns found=false (not an error) when no prior log exists.
	Load() (params domain.Params, found bool, err error)
	// Save must replace the log atomically so a crash mid-write never
	// corrupts the previously valid log.
	Save(params domain.Params) error
}
