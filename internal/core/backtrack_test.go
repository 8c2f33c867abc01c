package core

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestBacktrackStackPushPop(t *testing.T) {
	s := NewBacktrackStack()
	assert.Equal(t, s.Empty(), true)
	s.Push(Frame{AtomIndex: 1})
	s.Push(Frame{AtomIndex: 2})
	assert.Equal(t, s.Len(), 2)

	f, ok := s.Pop()
	assert.Assert(t, ok)
	assert.Equal(t, f.AtomIndex, 2)

	f, ok = s.Pop()
	assert.Assert(t, ok)
	assert.Equal(t, f.AtomIndex, 1)

	_, ok = s.Pop()
	assert.Equal(t, ok, false)
}

func TestBacktrackStackTop(t *testing.T) {
	s := NewBacktrackStack()
	assert.Assert(t, s.Top() == nil)
	s.Push(Frame{AtomIndex: 5})
	assert.Equal(t, s.Top().AtomIndex, 5)
}

func TestBacktrackStackSetTop(t *testing.T) {
	s := NewBacktrackStack()
	s.Push(Frame{AtomIndex: 1, MatchCount: 1})
	s.SetTop(9, 3, []Capture{{0, 1}})
	top := s.Top()
	assert.Equal(t, top.AtomIndex, 9)
	assert.Equal(t, top.MatchCount, 3)
	assert.DeepEqual(t, top.NestSnapshot, []Capture{{0, 1}})
}

func TestBacktrackStackSetTopOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewBacktrackStack().SetTop(0, 0, nil)
}
