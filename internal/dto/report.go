package dto

import (
	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/pkg/schema"
)

// Replacement is a caller value that defaulting rejected.
type Replacement struct {
	Path   string `json:"path" yaml:"path"`
	Input  any    `json:"input,omitempty" yaml:"input,omitempty"`
	Output any    `json:"output,omitempty" yaml:"output,omitempty"`
}

// TraceReport is the wire form of one resolved trace.
type TraceReport struct {
	Index    int            `json:"index" yaml:"index"`
	Mode     string         `json:"mode" yaml:"mode"`
	Out      map[string]any `json:"out" yaml:"out"`
	Replaced []Replacement  `json:"replaced,omitempty" yaml:"replaced,omitempty"`
}

// Report is the wire form of a resolved document.
type Report struct {
	Document string        `json:"document,omitempty" yaml:"document,omitempty"`
	Traces   []TraceReport `json:"traces" yaml:"traces"`
}

// Issue is one lint finding.
type Issue struct {
	Trace   int    `json:"trace" yaml:"trace"`
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// LintReport lists the findings of a document; Valid is true when there are none.
type LintReport struct {
	Document string  `json:"document,omitempty" yaml:"document,omitempty"`
	Valid    bool    `json:"valid" yaml:"valid"`
	Issues   []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewReport converts engine results. Private keys are dropped unless
// private is set.
func NewReport(id string, results []*indicator.Result, private bool) Report {
	report := Report{Document: id, Traces: make([]TraceReport, 0, len(results))}
	for _, res := range results {
		tr := TraceReport{Index: res.Index, Mode: res.Trace.Mode, Out: res.Out}
		if !private {
			tr.Out = res.Public()
		}
		for _, ev := range res.Replaced() {
			tr.Replaced = append(tr.Replaced, Replacement{Path: ev.Path, Input: ev.Input, Output: ev.Output})
		}
		report.Traces = append(report.Traces, tr)
	}
	return report
}

// AddIssues appends the findings of a Lint error for trace index.
func (r *LintReport) AddIssues(index int, err error) {
	if err == nil {
		return
	}
	errs := schema.ValidationErrors(err)
	if errs == nil {
		errs = []error{err}
	}
	for _, e := range errs {
		issue := Issue{Trace: index, Message: e.Error()}
		if ve, ok := e.(*schema.ValidationError); ok {
			issue.Path = ve.Key
			issue.Message = ve.Reason
		}
		r.Issues = append(r.Issues, issue)
	}
	r.Valid = len(r.Issues) == 0
}

// Linter checks one raw trace; indicator.Engine implements it.
type Linter interface {
	Lint(traceIn map[string]any) error
}

// Lint checks every trace of traces with l.
func Lint(l Linter, id string, traces []map[string]any) LintReport {
	report := LintReport{Document: id, Valid: true}
	for i, trace := range traces {
		report.AddIssues(i, l.Lint(trace))
	}
	return report
}
