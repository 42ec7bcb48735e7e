// SPDX-License-Identifier: MPL-2.0

// Package platform decides which platform block of a devfile applies to the
// current run.
package platform
