// Command zk100 runs a ZK-100 challenge (grid programs plus an input and
// expected-output stream) and prints the resulting public outputs record.
//
// It reads a single JSON object from stdin:
//
//	{"prog_words": [...], "inputs": [...], "expected": [...]}
//
// and writes the public outputs record as JSON to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vybium/zk100/pkg/zk100"
)

type challengeInput struct {
	ProgWords []uint32 `json:"prog_words"`
	Inputs    []uint32 `json:"inputs"`
	Expected  []uint32 `json:"expected"`
}

type publicOutputsJSON struct {
	ChallengeCommit string `json:"challenge_commit"`
	ProgramCommit   string `json:"program_commit"`
	OutputCommit    string `json:"output_commit"`
	Cycles          uint64 `json:"cycles"`
	Msgs            uint64 `json:"msgs"`
	NodesUsed       uint32 `json:"nodes_used"`
	Solved          bool   `json:"solved"`
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "zk100: "+msg)
}

func fatal(msg string) {
	logStderr(msg)
	os.Exit(1)
}

func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal(fmt.Sprintf("reading stdin: %v", err))
	}

	var input challengeInput
	if err := json.Unmarshal(raw, &input); err != nil {
		fatal(fmt.Sprintf("parsing challenge JSON: %v", err))
	}

	logStderr(fmt.Sprintf("loaded challenge: %d prog_words, %d inputs, %d expected",
		len(input.ProgWords), len(input.Inputs), len(input.Expected)))

	driver, err := zk100.NewDriver(zk100.DefaultDriverConfig())
	if err != nil {
		fatal(fmt.Sprintf("building driver: %v", err))
	}

	outputs, err := driver.Run(zk100.Challenge{
		ProgWords: input.ProgWords,
		Inputs:    input.Inputs,
		Expected:  input.Expected,
	})
	if err != nil {
		fatal(fmt.Sprintf("running challenge: %v", err))
	}

	logStderr(fmt.Sprintf("done: cycles=%d msgs=%d nodes_used=%d solved=%v",
		outputs.Score.Cycles, outputs.Score.Msgs, outputs.Score.NodesUsed, outputs.Solved))

	result := publicOutputsJSON{
		ChallengeCommit: "0x" + outputs.ChallengeCommit.Big().Text(16),
		ProgramCommit:   "0x" + outputs.ProgramCommit.Big().Text(16),
		OutputCommit:    "0x" + outputs.OutputCommit.Big().Text(16),
		Cycles:          outputs.Score.Cycles,
		Msgs:            outputs.Score.Msgs,
		NodesUsed:       outputs.Score.NodesUsed,
		Solved:          outputs.Solved,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fatal(fmt.Sprintf("encoding result: %v", err))
	}
}
