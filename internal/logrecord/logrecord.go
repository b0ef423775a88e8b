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

// Package logrecord persists a repair log (jsonrepair.LogEntry slice) to a
// zstd-compressed stream, for the CLI's --log-json-path option. Dump
// marshals the whole in-memory slice at once; Load reads it back whole.
// Grounded on parsed_serialize.go's
// "marshal, then compress through an io.Writer" shape, simplified from
// that file's custom tape/string-table format down to one JSON document
// per dump, since a repair log has nothing like simdjson's tape to stream
// incrementally.
package logrecord

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"

	"github.com/minio-jsonrepair/jsonrepair"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dump writes entries to w as zstd-compressed JSON.
func Dump(w io.Writer, entries []jsonrepair.LogEntry) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	b, err := json.Marshal(entries)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Load reads back a log previously written with Dump.
func Load(r io.Reader) ([]jsonrepair.LogEntry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	b, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	var entries []jsonrepair.LogEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
