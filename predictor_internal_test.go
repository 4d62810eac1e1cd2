package tiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictorLayout_WalkDirection(t *testing.T) {
	l := predictorLayout{sampleLen: 1, stride: 1, width: 4}

	var visited []int
	l.walk(8, forward, func(b int) { visited = append(visited, b) })
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, visited)

	visited = nil
	l.walk(8, backward, func(b int) { visited = append(visited, b) })
	assert.Equal(t, []int{7, 6, 5, 3, 2, 1}, visited)
}

func TestPredictorLayout_WalkPartialSample(t *testing.T) {
	l := predictorLayout{sampleLen: 2, stride: 2, width: 3}

	var visited []int
	l.walk(7, backward, func(b int) { visited = append(visited, b) })
	assert.Equal(t, []int{4, 2}, visited)

	visited = nil
	l.walk(1, forward, func(b int) { visited = append(visited, b) })
	assert.Empty(t, visited)
}

func TestPredictorLayout_ForwardDifferencingCorrupts(t *testing.T) {
	// Differencing must run backward: a forward pass reads already differenced neighbours.
	l := predictorLayout{sampleLen: 1, stride: 1, width: 4}
	buf := []byte{10, 12, 15, 20}

	l.walk(len(buf), forward, func(b int) {
		l.put(buf, b, l.get(buf, b)-l.get(buf, b-l.stride))
	})
	assert.NotEqual(t, []byte{10, 2, 3, 5}, buf)
}

func TestPredictorLayout_GetPut(t *testing.T) {
	buf := make([]byte, 3)

	be := predictorLayout{sampleLen: 3}
	be.put(buf, 0, 0x01020304)
	assert.Equal(t, []byte{0x02, 0x03, 0x04}, buf)
	assert.Equal(t, uint32(0x020304), be.get(buf, 0))

	le := predictorLayout{sampleLen: 3, littleEndian: true}
	le.put(buf, 0, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02}, buf)
	assert.Equal(t, uint32(0x020304), le.get(buf, 0))
}
