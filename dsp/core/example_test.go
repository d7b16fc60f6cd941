package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

func ExampleApplyStreamOptions() {
	cfg := core.ApplyStreamOptions(
		core.WithFrequency(120),
		core.WithBlockSize(256),
	)

	fmt.Printf("frequency=%.0f blockSize=%d\n", cfg.Frequency, cfg.BlockSize)

	// Output:
	// frequency=120 blockSize=256
}

func ExampleClamp() {
	fmt.Println(core.Clamp(1.7, 0, 1), core.Clamp(-0.2, 0, 1), core.Lerp(1, 3, 0.25))

	// Output:
	// 1 0 1.5
}
