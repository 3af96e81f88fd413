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

// Package rewrite applies a replacement table to a list of files in place.
package rewrite

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/retheme/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEncoding is returned for files that are not valid UTF-8
var ErrInvalidEncoding = errors.New("content is not valid utf-8")

// 📢 Reporter receives progress for a run
type Reporter interface {
	// Found is called once, after discovery and before any file is read
	Found(ctx context.Context, total int)
	// File is called once per processed file, in processing order
	File(ctx context.Context, result FileResult)
	// Done is called after the last file
	Done(ctx context.Context, report *Report)
}

// 🔧 Options configures a Rewriter
type Options struct {
	// FS is used for all file access. Defaults to OSFileSystem.
	FS FileSystem
	// Rules are applied to every file, in order
	Rules []text.ReplacementRule
	// Reporter receives progress. Optional.
	Reporter Reporter
}

// ✏️ Rewriter rewrites candidate files one at a time
type Rewriter struct {
	fs       FileSystem
	rules    []text.ReplacementRule
	reporter Reporter
}

// 🏭 New creates a rewriter with the given options
func New(opts Options) (*Rewriter, error) {
	if err := text.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	fs := opts.FS
	if fs == nil {
		fs = OSFileSystem{}
	}

	rules := make([]text.ReplacementRule, len(opts.Rules))
	copy(rules, opts.Rules)

	return &Rewriter{
		fs:       fs,
		rules:    rules,
		reporter: opts.Reporter,
	}, nil
}

// Run processes paths sequentially, in order. Failures are recorded per file
// and never stop the run. If ctx is cancelled, files not yet started are left
// untouched and absent from the report.
func (r *Rewriter) Run(ctx context.Context, paths []string) *Report {
	logger := zerolog.Ctx(ctx)
	report := &Report{Results: make([]FileResult, 0, len(paths))}

	if r.reporter != nil {
		r.reporter.Found(ctx, len(paths))
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("remaining", len(paths)-report.Len()).Msg("run interrupted")
			break
		}

		result := r.RewriteFile(ctx, path)
		report.Results = append(report.Results, result)

		if r.reporter != nil {
			r.reporter.File(ctx, result)
		}
	}

	if r.reporter != nil {
		r.reporter.Done(ctx, report)
	}

	return report
}

// RewriteFile reads path, applies every rule and writes the result back if it
// changed. The file is written at most once.
func (r *Rewriter) RewriteFile(ctx context.Context, path string) FileResult {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	info, err := r.fs.Stat(ctx, path)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeReadError, Err: errors.Errorf("stat: %w", err)}
	}

	content, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeReadError, Err: errors.Errorf("reading file: %w", err)}
	}

	if !utf8.Valid(content) {
		return FileResult{Path: path, Outcome: OutcomeReadError, Err: errors.Errorf("decoding file: %w", ErrInvalidEncoding)}
	}

	result := text.ApplyRules(string(content), r.rules)
	if !result.Modified {
		logger.Debug().Msg("no rule changed the content")
		return FileResult{Path: path, Outcome: OutcomeUnchanged}
	}

	if err := r.fs.WriteFile(ctx, path, []byte(result.Content), info.Mode().Perm()); err != nil {
		return FileResult{Path: path, Outcome: OutcomeWriteError, Err: errors.Errorf("writing file: %w", err)}
	}

	logger.Debug().Int("replacements", result.ReplacementCount).Msg("file rewritten")

	return FileResult{Path: path, Outcome: OutcomeUpdated, Replacements: result.ReplacementCount}
}
