// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filetests houses a test harness for rendering templates and asserting
the expected output.
*/
package filetests

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/tenjin/pkg/datavalues"
	"carvel.dev/tenjin/pkg/template"
	"carvel.dev/tenjin/pkg/texttemplate"
	"github.com/k14s/difflib"
)

const (
	sectionSeparator = "\n+++\n\n"
	templateHeader   = "--- "

	// MainTemplate is the template that gets rendered; others can be included.
	MainTemplate = "main"
)

// NamedTemplate is one template section of a test file.
type NamedTemplate struct {
	Name string
	Src  string
}

// EvaluateTemplates is the processing desired from source templates and data to the final result.
type EvaluateTemplates func(templates []NamedTemplate, data interface{}) (string, *TestErr)

// FileTests contain a suite of test cases, each described in a separate file, verifying the behavior of templates.
//
// Test cases:
// - are found within the directory at "PathToTests"
// - conventionally have a .tpltest extension
// - consist of three sections divided by `+++` and a blank line: templates, YAML data and expected output.
//
// The templates section is a single template named "main", or several templates
// each starting with a `--- <name>` line.
//
// Types of template tests:
// - expected output starting with `ERR:` indicate that expected output is an error message
// - otherwise expected output is the literal output from rendering (without the final newline)
//
// For example:
//
//	--- main
//	<ul>{ for u in users }{ include row with u }{ end }</ul>
//	--- row
//	<li>{ name }</li>
//	+++
//
//	users:
//	- name: Ann
//	+++
//
//	<ul><li>Ann</li></ul>
type FileTests struct {
	PathToTests string
	EvalFunc    EvaluateTemplates
	ShowAST     bool
}

// Run runs each test: enumerates each file within FileTests.PathToTests; splits and evaluates using FileTests.EvalFunc.
func (f FileTests) Run(t *testing.T) {
	var files []string

	err := filepath.Walk(f.PathToTests, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if filepath.Ext(walkedPath) == ".tpltest" {
			files = append(files, walkedPath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to enumerate filetests: %s", err)
	}
	if len(files) == 0 {
		t.Fatalf("Expected to find filetests in %s", f.PathToTests)
	}

	if f.EvalFunc == nil {
		f.EvalFunc = f.DefaultEvalTemplates
	}

	for _, filePath := range files {
		filePath := filePath

		t.Run(filePath, func(t *testing.T) {
			contents, err := os.ReadFile(filePath)
			if err != nil {
				t.Fatal(err)
			}

			pieces := strings.SplitN(string(contents), sectionSeparator, 3)
			if len(pieces) != 3 {
				t.Fatalf("expected file %s to include two +++ separators", filePath)
			}

			data, err := datavalues.FromYAML([]byte(pieces[1]))
			if err != nil {
				t.Fatalf("data section: %s", err)
			}

			expectedStr := strings.TrimSuffix(pieces[2], "\n")
			result, testErr := f.EvalFunc(SplitTemplates(pieces[0]), data)

			switch {
			case strings.HasPrefix(expectedStr, "ERR:"):
				if testErr == nil {
					err = fmt.Errorf("expected eval error, but did not receive it; output:\n%s", result)
				} else {
					resultStr := TrimTrailingMultilineWhitespace(testErr.UserErr().Error())
					expectedStr = strings.TrimPrefix(expectedStr, "ERR:")
					expectedStr = strings.TrimPrefix(expectedStr, " ")
					expectedStr = TrimTrailingMultilineWhitespace(expectedStr)
					err = f.expectEquals(resultStr, expectedStr)
				}
			default:
				if testErr == nil {
					err = f.expectEquals(result, expectedStr)
				} else {
					err = testErr.TestErr()
				}
			}

			if err != nil {
				t.Fatalf("%s", err)
			}
		})
	}
}

// SplitTemplates splits the templates section of a test file.
func SplitTemplates(section string) []NamedTemplate {
	if !strings.HasPrefix(section, templateHeader) {
		return []NamedTemplate{{Name: MainTemplate, Src: section}}
	}

	var result []NamedTemplate
	for _, piece := range strings.Split(section, "\n"+templateHeader) {
		piece = strings.TrimPrefix(piece, templateHeader)
		name, src, _ := strings.Cut(piece, "\n")
		result = append(result, NamedTemplate{Name: strings.TrimSpace(name), Src: src})
	}
	return result
}

// TestErr captures an error result from a single test.
type TestErr struct {
	realErr error
	testErr error
}

// NewTestErr creates a new TestErr
func NewTestErr(realErr, testErr error) *TestErr {
	return &TestErr{realErr, testErr}
}

// UserErr yields the error returned to the user
func (e TestErr) UserErr() error { return e.realErr }

// TestErr yields the error wrapped with helpful test context
func (e TestErr) TestErr() error { return e.testErr }

func (f FileTests) expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<\n### diff expected...result:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}

// DefaultEvalTemplates compiles and registers all templates, then renders
// "main" against data.
func (f FileTests) DefaultEvalTemplates(templates []NamedTemplate, data interface{}) (string, *TestErr) {
	registry := template.NewRegistry()

	for _, tpl := range templates {
		compiled, err := texttemplate.NewParser().Parse([]byte(tpl.Src), tpl.Name)
		if err != nil {
			return "", NewTestErr(err, fmt.Errorf("compile error: %v", err))
		}
		if f.ShowAST {
			fmt.Printf("### ast %s:\n%s", tpl.Name, compiled.DebugString())
		}
		registry.Register(tpl.Name, compiled)
	}

	var out bytes.Buffer

	err := template.NewRenderer(registry).RenderNamed(MainTemplate, datavalues.NewValue(data), &out)
	if err != nil {
		return out.String(), NewTestErr(err, fmt.Errorf("render error: %v\noutput so far:\n%s", err, out.String()))
	}
	return out.String(), nil
}

// TrimTrailingMultilineWhitespace returns a string with trailing whitespace trimmed from every line as well
// as trimmed trailing empty lines
func TrimTrailingMultilineWhitespace(s string) string {
	var trimmedLines []string
	for _, line := range strings.Split(s, "\n") {
		trimmedLine := strings.TrimRight(line, "\t ")
		trimmedLines = append(trimmedLines, trimmedLine)
	}
	multiline := strings.Join(trimmedLines, "\n")
	return strings.TrimRight(multiline, "\n")
}
