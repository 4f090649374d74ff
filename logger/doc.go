// Package logger is the public API of nyx. Most users only need to import
// this package.
//
// A Logger gates every call by its enabled flag and minimum level before
// doing any work, renders the record through the attached formatter and
// dispatches the line to the console and the per-process session log file.
// The dispatch strategy is fixed at construction time: Release mode queues
// writes on a single background worker, Strict mode writes synchronously
// and terminates the process after the first error from each unseen call
// site (an interactive-debugging aid, pluggable via the abort policy).
//
// The package holds a lazily created default Logger in release mode; the
// package-level functions Info, Error, Expect, etc. delegate to it, so
// simple programs can log without any setup:
//
//	logger.Info("ready on port", 8080)
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithMode(logger.Strict).
//	    WithLevel(logger.DebugLevel).
//	    WithTheme(formatter.DefaultTheme()).
//	    Build()
//
// Level checks happen before any allocation, formatting or hook, so
// filtered-out messages cost only two atomic loads.
package logger
