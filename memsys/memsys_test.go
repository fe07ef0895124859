/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package memsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h, err := New(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Lo())
	assert.Equal(t, 0, h.Hi())
	assert.Equal(t, 1<<20, len(h.Bytes()))
	h.Release()

	_, err = New(0)
	assert.Error(t, err)
	_, err = New(-1)
	assert.Error(t, err)
}

func TestExtend(t *testing.T) {
	h := NewFromBytes(make([]byte, 100))

	old, err := h.Extend(40)
	require.NoError(t, err)
	assert.Equal(t, 0, old)
	assert.Equal(t, 40, h.Hi())

	old, err = h.Extend(60)
	require.NoError(t, err)
	assert.Equal(t, 40, old)
	assert.Equal(t, 100, h.Hi())

	// the reserve is exhausted; the break must not move
	_, err = h.Extend(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 100, h.Hi())

	_, err = h.Extend(-1)
	assert.Error(t, err)

	old, err = h.Extend(0)
	require.NoError(t, err)
	assert.Equal(t, 100, old)
}

func TestReset(t *testing.T) {
	h := NewFromBytes(make([]byte, 64))
	_, err := h.Extend(64)
	require.NoError(t, err)

	h.Reset()
	assert.Equal(t, 0, h.Hi())

	old, err := h.Extend(16)
	require.NoError(t, err)
	assert.Equal(t, 0, old)
}

func TestRelease(t *testing.T) {
	h, err := New(4096)
	require.NoError(t, err)
	h.Release()
	assert.Nil(t, h.Bytes())

	// a caller-owned reserve is not pooled; Release must still be safe
	h2 := NewFromBytes(make([]byte, 16))
	assert.NotPanics(t, func() { h2.Release() })
}
