// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/retheme/pkg/rewrite"
)

// 🎯 Logger prints run progress to the console and mirrors it to zerolog.
// It implements rewrite.Reporter.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

var _ rewrite.Reporter = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a single file outcome for display
func formatFileResult(res rewrite.FileResult) string {
	name := filepath.Base(res.Path)

	switch res.Outcome {
	case rewrite.OutcomeUpdated:
		return fmt.Sprintf("%s Updated: %s",
			color.New(color.FgGreen).Sprint("✓"),
			name)
	case rewrite.OutcomeUnchanged:
		return fmt.Sprintf("%s No changes: %s",
			color.New(color.FgYellow).Sprint("-"),
			name)
	default:
		return fmt.Sprintf("%s Error with %s: %s",
			color.New(color.FgRed).Sprint("✗"),
			name,
			res.Err)
	}
}

// 📝 Found logs the number of discovered candidates
func (l *Logger) Found(ctx context.Context, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Found %d files to update\n", total)

	l.zlog.Info().Int("files", total).Msg("discovered candidate files")
}

// 📝 File logs the outcome of one file
func (l *Logger) File(ctx context.Context, res rewrite.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatFileResult(res))

	var ev *zerolog.Event
	if res.Outcome.IsError() {
		ev = l.zlog.Error().Err(res.Err)
	} else {
		ev = l.zlog.Info()
	}
	ev.Str("file", res.Path).
		Str("outcome", res.Outcome.String()).
		Int("replacements", res.Replacements).
		Msg("file processed")
}

// 📝 Done logs the run summary and the completion line
func (l *Logger) Done(ctx context.Context, report *rewrite.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := report.Count(rewrite.OutcomeUpdated)
	unchanged := report.Count(rewrite.OutcomeUnchanged)
	failed := len(report.Errors())

	fmt.Fprintf(l.console, "%s updated, %s unchanged, %s failed\n",
		color.New(color.FgGreen).Sprint(updated),
		color.New(color.FgYellow).Sprint(unchanged),
		color.New(color.FgRed).Sprint(failed))
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Bold).Sprint("Done!"))

	l.zlog.Info().
		Int("files", report.Len()).
		Int("updated", updated).
		Int("unchanged", unchanged).
		Int("failed", failed).
		Msg("run complete")
}
