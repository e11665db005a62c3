// SPDX-License-Identifier: MIT

// Package cli is responsible for parsing command-line arguments, merging them
// over an optional HCL job file, and handling process-level concerns like exit
// codes. It translates flags into a config.Job.
package cli
