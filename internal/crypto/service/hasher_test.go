package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSM3Hasher(t *testing.T) {
	hasher := NewSM3Hasher()

	t.Run("standard vector", func(t *testing.T) {
		assert.Equal(t, "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0", hasher.Hash("abc"))
	})

	t.Run("salt is prepended", func(t *testing.T) {
		assert.Equal(t, hasher.Hash("abc"), hasher.HashWithSalt("c", "ab"))
		assert.NotEqual(t, hasher.Hash("abc"), hasher.HashWithSalt("abc", "salt"))
	})

	t.Run("fixed length", func(t *testing.T) {
		assert.Len(t, hasher.Hash(""), 64)
		assert.Len(t, hasher.Hash("a much longer input that spans more than one block of sixty four bytes"), 64)
	})
}

func TestSHA256Hasher(t *testing.T) {
	hasher := NewSHA256Hasher()

	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hasher.Hash("abc"))
	assert.Equal(t, hasher.Hash("abc"), hasher.HashWithSalt("bc", "a"))
}
