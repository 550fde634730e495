// Released under an MIT license. See LICENSE.

// Package job puts a build subprocess in its own process group so it
// can be killed as a unit, including any linker or compiler it spawns
// in turn. A full interactive job-control system manages
// foreground/background job tables for a shell's running tasks, which
// a one-shot build invocation has no use for; only the "start a
// process in its own group, signal the group" primitive carries over.
package job
