package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"lupin/internal/config"
	"lupin/internal/observ"
	"lupin/internal/trace"
)

// finishTrace flushes the tracer; failed dumps the ring buffer, if any.
type finishTrace func(failed bool)

// setupTracing builds the tracer described by cfg and attaches it to ctx.
func setupTracing(ctx context.Context, cfg config.TraceConfig, errOut io.Writer) (context.Context, finishTrace, error) {
	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func(bool) {}, nil
	}

	mode, err := trace.ParseMode(cfg.Mode)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid trace format: %w", err)
	}
	format = trace.ResolveFormat(format, cfg.Output)

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: cfg.Output,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	var ring *trace.RingTracer
	switch t := tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring, _ = t.Ring()
	}

	finish := func(failed bool) {
		if failed && ring != nil {
			if err := dumpRing(ring, mode, format, cfg.Output, errOut); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return trace.WithTracer(ctx, tracer), finish, nil
}

// dumpRing пишет последние события: в mode=ring туда же, куда шёл бы поток,
// в mode=both на stderr (поток уже записан в output).
func dumpRing(ring *trace.RingTracer, mode trace.StorageMode, format trace.Format, output string, errOut io.Writer) error {
	w := errOut
	if mode == trace.ModeRing && output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if format == trace.FormatText {
		fmt.Fprintf(w, "trace: last %d events before failure\n", len(ring.Snapshot()))
	}
	return ring.Dump(w, format)
}

func printTimings(w io.Writer, timer *observ.Timer) {
	fmt.Fprint(w, timer.Summary())
}
