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

// Tag is a key/value pair attached to an element.
type Tag struct {
	Key   string
	Value string
}

// Tags is the ordered set of tags of an element. Keys are unique; the order
// is the order in which keys were first added.
type Tags []Tag

// Get returns the value of the key.
func (t Tags) Get(key string) (string, bool) {
	if i := t.index(key); i >= 0 {
		return t[i].Value, true
	}

	return "", false
}

// Set replaces the value of an existing key in place or appends a new tag.
// It reports whether the tags changed.
func (t *Tags) Set(key, value string) bool {
	if i := t.index(key); i >= 0 {
		if (*t)[i].Value == value {
			return false
		}

		(*t)[i].Value = value

		return true
	}

	*t = append(*t, Tag{Key: key, Value: value})

	return true
}

// Delete removes the key, keeping the order of the remaining tags. It reports
// whether the key was present.
func (t *Tags) Delete(key string) bool {
	i := t.index(key)
	if i < 0 {
		return false
	}

	*t = append((*t)[:i], (*t)[i+1:]...)

	return true
}

// Map returns the tags as a map.
func (t Tags) Map() map[string]string {
	m := make(map[string]string, len(t))
	for _, tag := range t {
		m[tag.Key] = tag.Value
	}

	return m
}

// Clone returns a copy that does not share storage with t.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}

	return append(Tags(nil), t...)
}

func (t Tags) index(key string) int {
	for i, tag := range t {
		if tag.Key == key {
			return i
		}
	}

	return -1
}
