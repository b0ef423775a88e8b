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

// LeadingZeroPolicy controls how numbers with a leading zero (e.g. "007")
// are re-emitted.
type LeadingZeroPolicy int

const (
	// KeepAsNumber keeps the token as a bare (non-strict) JSON number.
	KeepAsNumber LeadingZeroPolicy = iota
	// QuoteAsString wraps the token in quotes, producing strict JSON.
	QuoteAsString
)

// Options configures a repair call. The zero value is not ready to use;
// construct one with DefaultOptions and apply Option funcs on top.
type Options struct {
	TolerateHashComments       bool
	RepairUndefined            bool
	LeadingZeroPolicy          LeadingZeroPolicy
	FencedCodeBlocks           bool
	AllowPythonKeywords        bool
	EnsureASCII                bool
	NormalizeJSNonFinite       bool
	NumberToleranceLeadingDot  bool
	NumberToleranceTrailingDot bool
	NumberToleranceIncompleteExponent bool
	NumberQuoteSuspicious      bool
	AggressiveTruncationFix    bool
	StreamNDJSONAggregate      bool
	AssumeValidJSONFastpath    bool
	WordCommentMarkers         []string
	Logging                    bool
	LogJSONPath                bool
	LogContextWindow           int
	PythonStyleSeparators      bool
}

// DefaultOptions returns the tolerant defaults described in spec §3.
func DefaultOptions() Options {
	return Options{
		TolerateHashComments:              true,
		RepairUndefined:                   true,
		LeadingZeroPolicy:                 KeepAsNumber,
		FencedCodeBlocks:                  true,
		AllowPythonKeywords:               true,
		EnsureASCII:                       false,
		NormalizeJSNonFinite:              true,
		NumberToleranceLeadingDot:         true,
		NumberToleranceTrailingDot:        true,
		NumberToleranceIncompleteExponent: true,
		NumberQuoteSuspicious:             true,
		AggressiveTruncationFix:           false,
		StreamNDJSONAggregate:             false,
		AssumeValidJSONFastpath:           false,
		WordCommentMarkers:                nil,
		Logging:                           false,
		LogJSONPath:                       false,
		LogContextWindow:                  10,
		PythonStyleSeparators:             false,
	}
}

// Option mutates an Options value. Grounded on options.go's ParserOption
// functional-option shape, generalized from a parser-internal struct to the
// public Options record.
type Option func(*Options)

// New builds an Options value from DefaultOptions with the given overrides
// applied in order.
func New(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithTolerateHashComments(b bool) Option { return func(o *Options) { o.TolerateHashComments = b } }
func WithRepairUndefined(b bool) Option      { return func(o *Options) { o.RepairUndefined = b } }
func WithLeadingZeroPolicy(p LeadingZeroPolicy) Option {
	return func(o *Options) { o.LeadingZeroPolicy = p }
}
func WithFencedCodeBlocks(b bool) Option    { return func(o *Options) { o.FencedCodeBlocks = b } }
func WithAllowPythonKeywords(b bool) Option { return func(o *Options) { o.AllowPythonKeywords = b } }
func WithEnsureASCII(b bool) Option         { return func(o *Options) { o.EnsureASCII = b } }
func WithNormalizeJSNonFinite(b bool) Option {
	return func(o *Options) { o.NormalizeJSNonFinite = b }
}
func WithNumberToleranceLeadingDot(b bool) Option {
	return func(o *Options) { o.NumberToleranceLeadingDot = b }
}
func WithNumberToleranceTrailingDot(b bool) Option {
	return func(o *Options) { o.NumberToleranceTrailingDot = b }
}
func WithNumberToleranceIncompleteExponent(b bool) Option {
	return func(o *Options) { o.NumberToleranceIncompleteExponent = b }
}
func WithNumberQuoteSuspicious(b bool) Option {
	return func(o *Options) { o.NumberQuoteSuspicious = b }
}
func WithAggressiveTruncationFix(b bool) Option {
	return func(o *Options) { o.AggressiveTruncationFix = b }
}
func WithStreamNDJSONAggregate(b bool) Option {
	return func(o *Options) { o.StreamNDJSONAggregate = b }
}
func WithAssumeValidJSONFastpath(b bool) Option {
	return func(o *Options) { o.AssumeValidJSONFastpath = b }
}
func WithWordCommentMarkers(markers ...string) Option {
	return func(o *Options) { o.WordCommentMarkers = markers }
}
func WithLogging(b bool) Option          { return func(o *Options) { o.Logging = b } }
func WithLogJSONPath(b bool) Option      { return func(o *Options) { o.LogJSONPath = b } }
func WithLogContextWindow(n int) Option  { return func(o *Options) { o.LogContextWindow = n } }
func WithPythonStyleSeparators(b bool) Option {
	return func(o *Options) { o.PythonStyleSeparators = b }
}

// CompatPython returns the override set used by the "python" CLI compat
// preset: treat Python literals and lenient numeric forms as first class.
func CompatPython() []Option {
	return []Option{
		WithAllowPythonKeywords(true),
		WithNormalizeJSNonFinite(true),
		WithPythonStyleSeparators(true),
	}
}
