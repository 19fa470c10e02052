package roar64

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures consumer callbacks as readable strings.
type recorder struct {
	events []string
}

func (r *recorder) Present(offset int, v uint64) {
	r.events = append(r.events, fmt.Sprintf("present(%d,%d)", offset, v))
}

func (r *recorder) Absent(start, end int) {
	r.events = append(r.events, fmt.Sprintf("absent(%d,%d)", start, end))
}

func TestForAllInRange_CoalescingScenario(t *testing.T) {
	t.Parallel()

	b := BitmapOf(5, 6, 100)

	var rec recorder
	b.ForAllInRange(0, 200, &rec)

	assert.Equal(t, []string{
		"absent(0,5)",
		"present(5,5)",
		"present(6,6)",
		"absent(7,100)",
		"present(100,100)",
		"absent(101,200)",
	}, rec.events)
}

func TestForAllInRange_EmptyBitmap(t *testing.T) {
	t.Parallel()

	b := New()

	var rec recorder
	b.ForAllInRange(50, 10, &rec)

	assert.Equal(t, []string{"absent(0,10)"}, rec.events)
}

func TestForAllInRange_GapsBetweenContainers(t *testing.T) {
	t.Parallel()

	b := BitmapOf(10, 65536+3)

	var rec recorder
	b.ForAllInRange(5, 65600, &rec)

	// the gap from inside the first container to inside the second is
	// one coalesced absent span
	assert.Equal(t, []string{
		"absent(0,5)",
		fmt.Sprintf("present(5,%d)", 10),
		fmt.Sprintf("absent(6,%d)", 65536+3-5),
		fmt.Sprintf("present(%d,%d)", 65536+3-5, 65536+3),
		fmt.Sprintf("absent(%d,%d)", 65536+4-5, 65600),
	}, rec.events)
}

func TestForAllInRange_WindowInsideRun(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.AddRange(1000, 2000)) // lands in run form

	var rec recorder
	b.ForAllInRange(1500, 10, &rec)

	assert.Equal(t, []string{
		"present(0,1500)", "present(1,1501)", "present(2,1502)",
		"present(3,1503)", "present(4,1504)", "present(5,1505)",
		"present(6,1506)", "present(7,1507)", "present(8,1508)",
		"present(9,1509)",
	}, rec.events)
}

func TestForEachInRange(t *testing.T) {
	t.Parallel()

	b := BitmapOf(5, 6, 100, 1<<40)

	var got []uint64
	b.ForEachInRange(6, 100, func(v uint64) {
		got = append(got, v)
	})

	assert.Equal(t, []uint64{6, 100}, got)

	got = nil
	b.ForEachInRange(0, 50, func(v uint64) {
		got = append(got, v)
	})
	assert.Equal(t, []uint64{5, 6}, got)
}
