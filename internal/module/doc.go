// SPDX-License-Identifier: MPL-2.0

// Package module implements the installable units of a devfile.
//
// Every kind (app, file, folder, link, group, phony) satisfies the Module
// interface. Install runs the module's ordered steps through an Executor,
// which rolls back already completed steps in reverse order when a step fails.
// A failed rollback is reported as *RollbackFailedError; callers must stop
// all further work when they see ErrRollbackFailed.
package module
