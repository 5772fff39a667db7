// Package codemodel is the typed document model produced by the emitter and
// consumed by printers.
//
// A File holds exactly one generated type and the functions that relate it to
// its source record. Function bodies are short straight-line sequences of Let
// statements followed by a Return, built from a small expression vocabulary.
package codemodel
