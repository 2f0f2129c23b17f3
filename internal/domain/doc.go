// Package domain contains the core model for the B-H loop simulator.
//
// The domain is presentation- and persistence-agnostic: it does not depend on
// the terminal UI, file formats, or plotting. Infra/adapters map into/from
// these types.
package domain
