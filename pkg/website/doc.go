// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package website serves a small playground: a page that posts templates
// and data to /render and shows the result.
package website
