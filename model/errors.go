// Copyright 2026 the original author or authors.
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

package model

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedAttribute is returned when a numeric attribute does not parse.
	ErrMalformedAttribute = errors.New("malformed attribute")

	// ErrMissingRequiredAttribute is returned when id, lat, lon, ref or a
	// member type is absent.
	ErrMissingRequiredAttribute = errors.New("missing required attribute")

	// ErrDuplicateID is returned when an element with the same key is already
	// present.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnresolvedReference describes a way node or relation member outside
	// the loaded extract. It is reported as a warning and never fails a load.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrElementInUse is returned when deleting an element that a way or a
	// relation still references.
	ErrElementInUse = errors.New("element in use")

	// ErrInvalidGeometry is returned when a way cannot form a line or polygon.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNotFound is returned when an edit targets an element that does not
	// exist.
	ErrNotFound = errors.New("element not found")
)

// ElementError describes a failure tied to a single element. ID is the raw
// identifier as it appeared in the document, or the formatted ID for
// in-memory operations.
type ElementError struct {
	Err   error
	Type  string
	ID    string
	Attr  string
	Value string
	Cause error
}

func (e *ElementError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Err.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Type)

	if e.ID != "" {
		sb.WriteString(" ")
		sb.WriteString(e.ID)
	}

	if e.Attr != "" {
		sb.WriteString(" attribute ")
		sb.WriteString(e.Attr)
	}

	if e.Value != "" {
		sb.WriteString(" = \"")
		sb.WriteString(e.Value)
		sb.WriteString("\"")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *ElementError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Cause}
}

// NewKeyError builds an ElementError for an element addressed by key.
func NewKeyError(err error, key Key) *ElementError {
	return &ElementError{Err: err, Type: key.Type.String(), ID: key.ID.String()}
}
