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

package jsonrepair

import "io"

// Repair parses input as tolerant, non-strict JSON and returns valid,
// strict JSON text. It never returns a partial result alongside an error:
// on error the returned string is empty.
func Repair(input string, opts Options) (string, error) {
	out, _, err := repair(input, opts)
	return out, err
}

// RepairWithLog is Repair plus the list of repair decisions made along the
// way, non-empty only when opts.Logging is set.
func RepairWithLog(input string, opts Options) (string, []LogEntry, error) {
	return repair(input, opts)
}

func repair(input string, opts Options) (string, []LogEntry, error) {
	lg := newLogger(&opts, input)

	buf := newStringSink(len(input))
	if err := repairDocument(input, &opts, buf, lg); err != nil {
		return "", nil, wrapSinkErr(err)
	}

	out := buf.String()
	if opts.PythonStyleSeparators {
		out = applyPythonStyleSeparators(out)
	}

	var entries []LogEntry
	if lg != nil {
		entries = lg.entries
	}
	return out, entries, nil
}

// RepairToWriter writes the repaired document to w through a buffered writer
// instead of returning it as a string, the shape spec §9 calls out for the
// non-streaming writer API. Each root value is still assembled in memory
// before it is written.
// opts.PythonStyleSeparators still applies: pythonSeparatorSink re-scans
// every emitStr chunk (not just single emitChar separators) for unquoted
// ',' and ':' the same way applyPythonStyleSeparators re-scans a whole
// buffer, so an object member staged and flushed as one string by
// parseObject is rewritten exactly like the in-memory Repair path.
func RepairToWriter(input string, opts Options, w io.Writer) error {
	lg := newLogger(&opts, input)

	ws := newWriterSink(w)
	var out sink = ws
	var sep *pythonSeparatorSink
	if opts.PythonStyleSeparators {
		sep = newPythonSeparatorSink(ws)
		out = sep
	}

	if err := repairDocument(input, &opts, out, lg); err != nil {
		return wrapSinkErr(err)
	}
	return wrapSinkErr(ws.Flush())
}
