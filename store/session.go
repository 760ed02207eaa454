// Copyright 2025 The sdb Authors
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

package store

// Session tracks the databases opened during one run of the application,
// keyed by their display name (the file basename). It is owned by the main
// window and must only be written from the UI event context; it is not
// internally locked.
type Session struct {
	databases map[string]string
	order     []string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		databases: make(map[string]string),
	}
}

// Register records a database under the given display name. It returns false
// without touching the session if the name is already registered, so opening
// the same file twice is a silent no-op.
func (s *Session) Register(name, path string) bool {
	if _, exists := s.databases[name]; exists {
		return false
	}
	s.databases[name] = path
	s.order = append(s.order, name)
	return true
}

// Lookup resolves a display name to the file path it was registered with.
func (s *Session) Lookup(name string) (string, bool) {
	path, ok := s.databases[name]
	return path, ok
}

// Names returns the registered display names in registration order.
func (s *Session) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of registered databases.
func (s *Session) Len() int {
	return len(s.databases)
}
