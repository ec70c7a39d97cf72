package pkg

import (
	"fmt"
)

// Stage names a step of the conversion pipeline.
type Stage string

const (
	StageRead      Stage = "read"
	StageDecode    Stage = "decode"
	StageTransform Stage = "transform"
	StageCrop      Stage = "crop"
	StageSample    Stage = "sample"
	StageWrite     Stage = "write"
)

// StageError reports the pipeline step a conversion failed in.
type StageError struct {
	Stage Stage
	Input string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Input, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
