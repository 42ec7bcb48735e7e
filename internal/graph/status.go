// SPDX-License-Identifier: MPL-2.0

package graph

// Module statuses. The zero value means not yet visited.
const (
	StatusUnset Status = iota
	StatusInProgress
	StatusSuccess
	StatusFailed
)

// Status is the install state of a module during one run.
type Status int

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unset"
	}
}

// Terminal reports whether s is success or failed.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}
