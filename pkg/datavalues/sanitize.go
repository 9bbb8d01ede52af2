// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"io"
	"sync"

	"carvel.dev/tenjin/pkg/template"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

func defaultPolicy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

// Sanitized is user-supplied HTML. It is injected with markup allowed by
// Policy (bluemonday's UGC policy when nil) and everything else stripped.
type Sanitized struct {
	HTML   string
	Policy *bluemonday.Policy
}

var _ template.Context = Sanitized{}

func (s Sanitized) Truthy(path template.Path) bool {
	return path.IsEmpty() && len(s.HTML) > 0
}

func (s Sanitized) Inject(path template.Path, w io.Writer) error {
	if !path.IsEmpty() {
		return template.Undefined(path)
	}
	policy := s.Policy
	if policy == nil {
		policy = defaultPolicy()
	}
	_, err := io.WriteString(w, policy.Sanitize(s.HTML))
	return err
}

func (s Sanitized) Iterate(path template.Path, _ *template.Chomp) error {
	if !path.IsEmpty() {
		return template.Undefined(path)
	}
	return template.NotIterable(path)
}
