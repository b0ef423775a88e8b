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

// Package testutil provides a second, independent JSON decoder for use as a
// conformance oracle in property tests (spec §8 P1: "repaired output always
// parses as strict JSON"). The decoder is independent of the engine's own
// tolerant parser; the engine itself uses sonic only for the sonic.Valid
// check that gates its AssumeValidJSONFastpath copy-through.
package testutil

import (
	"github.com/bytedance/sonic"
)

// IsStrictJSON reports whether s parses as valid, strict JSON.
func IsStrictJSON(s string) bool {
	return sonic.Valid([]byte(s))
}

// MustDecodeAny decodes s with the oracle decoder, panicking on failure —
// meant for test helpers that have already checked IsStrictJSON.
func MustDecodeAny(s string) any {
	var v any
	if err := sonic.UnmarshalString(s, &v); err != nil {
		panic(err)
	}
	return v
}
