// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps CUE source inputs at 5MB.
const DefaultMaxFileSize int64 = 5 << 20

type (
	// Option configures Unify and ParseAndDecode.
	Option func(*settings)

	settings struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}
)

func newSettings(opts []Option) settings {
	s := settings{maxFileSize: DefaultMaxFileSize, concrete: true, filename: "<input>"}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMaxFileSize limits the size of FromBytes inputs.
func WithMaxFileSize(size int64) Option {
	return func(s *settings) { s.maxFileSize = size }
}

// WithConcrete controls whether every value must be concrete after
// unification. Config files pass false so unset optional fields are allowed.
func WithConcrete(concrete bool) Option {
	return func(s *settings) { s.concrete = concrete }
}

// WithFilename names the input in error messages.
func WithFilename(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.filename = name
		}
	}
}
