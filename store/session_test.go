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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionRegister(t *testing.T) {
	s := NewSession()

	assert.True(t, s.Register("shop.db", "/data/shop.db"))
	assert.Equal(t, 1, s.Len())

	path, ok := s.Lookup("shop.db")
	assert.True(t, ok)
	assert.Equal(t, "/data/shop.db", path)
}

func TestSessionRegisterDuplicate(t *testing.T) {
	s := NewSession()

	assert.True(t, s.Register("shop.db", "/data/shop.db"))
	// Same name again is a silent no-op, even with a different path.
	assert.False(t, s.Register("shop.db", "/elsewhere/shop.db"))

	assert.Equal(t, 1, s.Len())
	path, ok := s.Lookup("shop.db")
	assert.True(t, ok)
	assert.Equal(t, "/data/shop.db", path)
}

func TestSessionLookupMissing(t *testing.T) {
	s := NewSession()

	path, ok := s.Lookup("missing.db")
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestSessionNamesOrder(t *testing.T) {
	s := NewSession()
	s.Register("b.db", "/b.db")
	s.Register("a.db", "/a.db")
	s.Register("c.db", "/c.db")

	assert.Equal(t, []string{"b.db", "a.db", "c.db"}, s.Names())
}
