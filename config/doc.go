// SPDX-License-Identifier: MIT

// Package config loads job files written in HCL into an immutable Job.
//
// A job file lists the run's inputs, outputs and tuning knobs:
//
//	input   = "graph.csv"
//	output  = "out/mst.csv"
//	summary = "out/run.yaml"
//	wake    = ["A"]
//	verify  = true
//
//	run {
//	  workers       = cpus
//	  max_rounds    = 0
//	  round_timeout = "30s"
//	}
//
//	store {
//	  kind = "badger"
//	  dir  = env.GHS_STORE_DIR
//	}
//
//	metrics { addr = ":9090" }
//	log     { level = "debug" format = "json" }
//
// Expressions are evaluated with two variables: env (the process environment
// as a map of strings) and cpus (the number of logical CPUs). Every attribute
// and block is optional; missing values keep DefaultJob's.
package config
