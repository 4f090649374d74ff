// Package formatter defines the pluggable rendering contract of the nyx
// logging facility and its built-in text implementation.
//
// A Formatter turns a core.Record into one output line, extracts bare file
// names for the error callback, and renders microbenchmark results. The
// engine binds itself to the formatter through Attach, giving the formatter
// read access to engine state such as the color Theme while rendering.
//
// Theme is purely cosmetic per-level color data. The engine treats it as an
// opaque describable value; only formatter implementations interpret the
// codes.
package formatter
