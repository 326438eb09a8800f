// Package zk100 is the public API for the ZK-100 grid VM: a deterministic
// 2x2-grid parallel-assembly machine whose execution commits to a
// proving-system-friendly public outputs record.
//
// # Quick Start
//
//	driver, err := zk100.NewDriver(zk100.DefaultDriverConfig())
//	if err != nil {
//		// handle invalid config
//	}
//	outputs, err := driver.Run(zk100.Challenge{
//		ProgWords: progWords,
//		Inputs:    []uint32{42},
//		Expected:  []uint32{42},
//	})
//
// # Architecture
//
// Driver.Run decodes prog_words into four per-cell programs, steps the
// grid (internal/zk100/grid) to halt, deadlock, or this Driver's cycle
// cap, and commits the result (internal/zk100/attest) using the Poseidon
// hash family (internal/zk100/core). The resulting PublicOutputs record is
// the only thing a downstream proving backend needs to consume; this
// package never produces or verifies a proof itself.
//
// # Determinism
//
// Driver.Run is fully deterministic: the same Challenge and DriverConfig
// always produce the same PublicOutputs, and the commitment it returns is
// bit-for-bit identical whether it was computed here or recomputed inside
// a constrained proving environment running the same algorithm.
package zk100
