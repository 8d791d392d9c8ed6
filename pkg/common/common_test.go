package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateStem(t *testing.T) {
	assert.Equal(t, "2024-01-02", DateStem("2024-01-02"))
	assert.Equal(t, "2024_01_02", DateStem("2024/01/02"))
	assert.Equal(t, "a_b_c_d", DateStem("a/b\\c:d"))
	assert.Equal(t, "what_", DateStem("what?"))
	assert.Equal(t, "_", DateStem(" "))
	assert.Equal(t, "undated", DateStem(""))
}

func TestRandomSpaceFact(t *testing.T) {
	facts := SpaceFacts()
	for i := 0; i < 50; i++ {
		assert.Contains(t, facts, RandomSpaceFact())
	}
	assert.Contains(t, LoadingMessage("x"), "Did you know? x")
}
