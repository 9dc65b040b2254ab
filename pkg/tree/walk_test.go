package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visited struct {
	key         string
	value       any
	depth       int
	isContainer bool
	inSequence  bool
}

func TestWalk_EnumeratesEveryNodeOnce(t *testing.T) {
	entry := NewMapping()
	entry.Set("device", Scalar("/dev/sda1"))
	entry.Set("mountPoint", Scalar("/boot"))
	root := Sequence(entry, Scalar("tail"))

	var got []visited
	Walk(root, func(key string, value any, depth int, isContainer, inSequence bool) {
		got = append(got, visited{key, value, depth, isContainer, inSequence})
	})

	want := []visited{
		{"", nil, 0, true, false},
		{"1", nil, 1, true, true},
		{"device", "/dev/sda1", 2, false, false},
		{"mountPoint", "/boot", 2, false, false},
		{"2", "tail", 1, false, true},
	}
	assert.Equal(t, want, got)
}

func TestWalk_ContainersVisitedWithNilValue(t *testing.T) {
	m := NewMapping()
	m.Set("inner", Sequence(Scalar(1)))

	containers := 0
	Walk(m, func(key string, value any, depth int, isContainer, inSequence bool) {
		if isContainer {
			containers++
			require.Nil(t, value)
		}
	})
	assert.Equal(t, 2, containers)
}

func TestWalk_NilTree(t *testing.T) {
	called := false
	Walk(nil, func(string, any, int, bool, bool) { called = true })
	assert.False(t, called)
}
