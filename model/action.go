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

// Action is the edit state of an element, derived from its ID and its edit
// flags. It is never read from an input document.
type Action int

const (
	Unchanged Action = iota
	Modify
	Create
	Delete
)

func (a Action) String() string {
	switch a {
	case Modify:
		return "modify"
	case Create:
		return "create"
	case Delete:
		return "delete"
	default:
		return "unchanged"
	}
}

// Attr is the value of the action attribute written for the state. Created
// elements are signalled by their negative ID alone, so only modified and
// deleted elements carry an attribute.
func (a Action) Attr() string {
	switch a {
	case Modify, Delete:
		return a.String()
	default:
		return ""
	}
}
