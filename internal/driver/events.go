package driver

import "context"

// Stage is the pass a *Dir runner is applying to a file.
type Stage uint8

const (
	StageLex Stage = iota + 1
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lexing"
	case StageParse:
		return "parsing"
	default:
		return ""
	}
}

type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// FileEvent reports the progress of one file in a directory run.
type FileEvent struct {
	Path   string
	Stage  Stage
	Status Status
}

// emit sends ev on opts.Events unless it is nil or ctx is done.
func (o Options) emit(ctx context.Context, ev FileEvent) {
	if o.Events == nil {
		return
	}
	select {
	case o.Events <- ev:
	case <-ctx.Done():
	}
}
