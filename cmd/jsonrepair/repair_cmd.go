// Copyright 2024 The jsonrepair Authors.
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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/minio-jsonrepair/jsonrepair"
	"github.com/minio-jsonrepair/jsonrepair/internal/logrecord"
)

var prettyJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// repairFlags holds every flag that shapes the jsonrepair.Options value for
// one invocation. Split out from rootCmd itself so the flag-to-Option
// wiring (buildOptions) can be read and tested as one unit, following
// sp3esu-mac-cleaner/cmd/scan.go's pattern of a dedicated flag struct per
// subcommand.
type repairFlags struct {
	output                  string
	inPlace                 bool
	stream                  bool
	chunkSize               int
	ndjsonAggregate         bool
	pretty                  bool
	ensureASCII             bool
	noPythonKeywords        bool
	noUndefinedNull         bool
	noFence                 bool
	noHashComments          bool
	noNonfiniteNull         bool
	leadingZero             string
	compat                  string
	strict                  bool
	aggressiveTruncationFix bool
	wordComments            []string
	logPath                 string
	logJSONPath             bool
}

var rf = &repairFlags{}

func registerRepairFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&rf.output, "output", "o", "", "write repaired output to this file instead of stdout")
	f.BoolVar(&rf.inPlace, "in-place", false, "overwrite the input file with the repaired output")
	f.BoolVar(&rf.stream, "stream", false, "repair input incrementally as a sequence of chunks (spec C5 streaming driver)")
	f.IntVar(&rf.chunkSize, "chunk-size", 65536, "read buffer size in bytes when --stream is set")
	f.BoolVar(&rf.ndjsonAggregate, "ndjson-aggregate", false, "wrap a --stream run's root values into a single JSON array instead of one-per-line")
	f.BoolVar(&rf.pretty, "pretty", false, "pretty-print the repaired output")
	f.BoolVar(&rf.ensureASCII, "ensure-ascii", false, "escape all non-ASCII characters in output strings")
	f.BoolVar(&rf.noPythonKeywords, "no-python-keywords", false, "do not treat True/False/None as JSON literals")
	f.BoolVar(&rf.noUndefinedNull, "no-undefined-null", false, "do not repair a bare undefined into null")
	f.BoolVar(&rf.noFence, "no-fence", false, "do not extract JSON from fenced code blocks")
	f.BoolVar(&rf.noHashComments, "no-hash-comments", false, "do not tolerate # line comments")
	f.BoolVar(&rf.noNonfiniteNull, "no-nonfinite-null", false, "do not normalize NaN/Infinity into null")
	f.StringVar(&rf.leadingZero, "leading-zero", "keep", "policy for leading-zero numbers: keep|quote")
	f.StringVar(&rf.compat, "compat", "", "apply a compatibility preset: python")
	f.BoolVar(&rf.strict, "strict", false, "assume input is already valid JSON and take the fast path")
	f.BoolVar(&rf.aggressiveTruncationFix, "aggressive-truncation-fix", false, "on truncation, drop the incomplete trailing member/element instead of nulling it")
	f.StringArrayVar(&rf.wordComments, "word-comment", nil, "drop the bare word MARKER where it appears before a key, value or array element (repeatable)")
	f.StringVar(&rf.logPath, "log-json-path", "", "write a zstd-compressed repair log to this path")
	f.BoolVar(&rf.logJSONPath, "log-include-path", false, "include the JSON path of each repair in the log")
}

func buildOptions() (jsonrepair.Options, error) {
	var base []jsonrepair.Option
	switch rf.compat {
	case "":
	case "python":
		base = append(base, jsonrepair.CompatPython()...)
	default:
		return jsonrepair.Options{}, fmt.Errorf("unknown --compat %q: want python", rf.compat)
	}

	opts := jsonrepair.New(base...)
	overrides := []jsonrepair.Option{
		jsonrepair.WithEnsureASCII(rf.ensureASCII),
		jsonrepair.WithAssumeValidJSONFastpath(rf.strict),
		jsonrepair.WithAggressiveTruncationFix(rf.aggressiveTruncationFix),
		jsonrepair.WithStreamNDJSONAggregate(rf.ndjsonAggregate),
		jsonrepair.WithWordCommentMarkers(rf.wordComments...),
	}
	if rf.noPythonKeywords {
		overrides = append(overrides, jsonrepair.WithAllowPythonKeywords(false))
	}
	if rf.noUndefinedNull {
		overrides = append(overrides, jsonrepair.WithRepairUndefined(false))
	}
	if rf.noFence {
		overrides = append(overrides, jsonrepair.WithFencedCodeBlocks(false))
	}
	if rf.noHashComments {
		overrides = append(overrides, jsonrepair.WithTolerateHashComments(false))
	}
	if rf.noNonfiniteNull {
		overrides = append(overrides, jsonrepair.WithNormalizeJSNonFinite(false))
	}
	if rf.logPath != "" {
		overrides = append(overrides, jsonrepair.WithLogging(true))
	}
	if rf.logJSONPath {
		overrides = append(overrides, jsonrepair.WithLogJSONPath(true))
	}
	switch rf.leadingZero {
	case "keep":
		overrides = append(overrides, jsonrepair.WithLeadingZeroPolicy(jsonrepair.KeepAsNumber))
	case "quote":
		overrides = append(overrides, jsonrepair.WithLeadingZeroPolicy(jsonrepair.QuoteAsString))
	default:
		return jsonrepair.Options{}, fmt.Errorf("unknown --leading-zero %q: want keep or quote", rf.leadingZero)
	}
	for _, o := range overrides {
		o(&opts)
	}
	return opts, nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	inputPath := "-"
	if len(args) == 1 {
		inputPath = args[0]
	}
	if rf.inPlace && inputPath == "-" {
		return fmt.Errorf("--in-place requires an input file, not stdin")
	}

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := rf.output
	if rf.inPlace {
		outPath = inputPath
	}

	if rf.stream {
		return runStreamRepair(in, outPath, opts)
	}
	return runWholeRepair(in, outPath, opts)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runWholeRepair(in io.Reader, outPath string, opts jsonrepair.Options) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	text, entries, err := jsonrepair.RepairWithLog(string(data), opts)
	if err != nil {
		return fmt.Errorf("repairing input: %w", err)
	}
	if rf.pretty {
		pretty, err := prettyJSON.MarshalIndent(jsoniter.RawMessage(text), "", "  ")
		if err == nil {
			text = string(pretty)
		}
	}
	if err := writeOutput(outPath, text); err != nil {
		return err
	}
	return writeLog(entries)
}

func runStreamRepair(in io.Reader, outPath string, opts jsonrepair.Options) error {
	out, closeOut, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	sr := jsonrepair.NewStreamRepairer(out, opts)
	buf := make([]byte, rf.chunkSize)
	r := bufio.NewReader(in)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if pushErr := sr.Push(buf[:n]); pushErr != nil {
				return fmt.Errorf("repairing chunk: %w", pushErr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
	if err := sr.Flush(); err != nil {
		return fmt.Errorf("flushing stream repair: %w", err)
	}
	slog.Debug("stream repair complete")
	return nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}
	return f, f.Close, nil
}

func writeOutput(path, text string) error {
	w, closeW, err := openOutput(path)
	if err != nil {
		return err
	}
	defer closeW()
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if path == "" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func writeLog(entries []jsonrepair.LogEntry) error {
	if rf.logPath == "" {
		return nil
	}
	f, err := os.Create(rf.logPath)
	if err != nil {
		return fmt.Errorf("opening --log-json-path: %w", err)
	}
	defer f.Close()
	if err := logrecord.Dump(f, entries); err != nil {
		return fmt.Errorf("writing repair log: %w", err)
	}
	slog.Debug("wrote repair log", "path", rf.logPath, "entries", len(entries))
	return nil
}
