package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"borrowck/internal/trace"
)

// setupTracing builds the tracer configured in s, stores it and a root
// span for the command in the command context, and returns the cleanup
// that ends the span and closes the tracer.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	level, err := trace.ParseLevel(s.cfg.Trace.Level)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     trace.FormatAuto,
		OutputPath: s.cfg.Trace.Output,
	})
	if err != nil {
		return nil, err
	}

	ctx, root := trace.Enter(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, "borrowck "+cmd.Name())
	cmd.SetContext(ctx)
	return func() {
		root.End("")
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
