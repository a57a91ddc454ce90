package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calib-core/engine"
)

const fixture = `two1nine
eightwothree
abcone2threexyz
xtwone3four
4nineeightseven2
zoneight234
7pqrstsixteen
oneight
one
twone
eightwo
nineight
eighthree
nineeight
eeeight
oooneeone
1
eightwothree
`

// fake scorer: the score of a line is its length
type lenScorer struct{ calls atomic.Int64 }

func (s *lenScorer) ScoreLine(line string) int {
	s.calls.Add(1)
	return len(line)
}

func TestSum_MatchesSequentialEngine(t *testing.T) {
	eng := engine.Default()
	for _, threads := range []int{0, 1, 2, 8} {
		for _, batch := range []int{0, 1, 3, 100} {
			got, err := Sum(context.Background(), Config{Threads: threads, BatchSize: batch}, fixture, eng)
			require.NoError(t, err)
			assert.Equal(t, uint64(885), got, "threads=%d batch=%d", threads, batch)
		}
	}
}

func TestSum_LargeDocument(t *testing.T) {
	doc := strings.Repeat(fixture, 1000)
	got, err := Sum(context.Background(), Config{Threads: 4, BatchSize: 64}, doc, engine.Default())
	require.NoError(t, err)
	assert.Equal(t, engine.Default().Sum(doc), got)
	assert.Equal(t, uint64(885_000), got)
}

func TestSum_EmptyDocument(t *testing.T) {
	sc := &lenScorer{}
	got, err := Sum(context.Background(), Config{Threads: 2}, "", sc)
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Zero(t, sc.calls.Load())
}

func TestForEachLine_VisitsEveryLineOnce(t *testing.T) {
	sc := &lenScorer{}
	var got []LineScore
	err := ForEachLine(context.Background(), Config{Threads: 3, BatchSize: 2}, "a\nbb\n\nccc\n", sc, func(ls LineScore) error {
		got = append(got, ls)
		return nil
	})
	require.NoError(t, err)

	sort.Slice(got, func(i, j int) bool { return got[i].Index < got[j].Index })
	assert.Equal(t, []LineScore{
		{Index: 0, Text: "a", Score: 1},
		{Index: 1, Text: "bb", Score: 2},
		{Index: 2, Text: "", Score: 0},
		{Index: 3, Text: "ccc", Score: 3},
	}, got)
	assert.EqualValues(t, 4, sc.calls.Load())
}

func TestForEachLine_FixtureScores(t *testing.T) {
	want := []int{29, 83, 13, 24, 42, 14, 76, 18, 11, 21, 82, 98, 83, 98, 88, 11, 11, 83}
	got := make([]int, len(want))
	err := ForEachLine(context.Background(), Config{Threads: 4, BatchSize: 5}, fixture, engine.Default(), func(ls LineScore) error {
		got[ls.Index] = ls.Score
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestForEachLine_ReturnsVisitError(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	err := ForEachLine(context.Background(), Config{Threads: 2, BatchSize: 1}, fixture, engine.Default(), func(LineScore) error {
		n++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n, "visit must not be called after it failed")
}

func TestForEachLine_VisitErrorStopsWorkers(t *testing.T) {
	const lines = 10000
	doc := strings.Repeat("x\n", lines)
	sc := &lenScorer{}
	boom := errors.New("boom")

	err := ForEachLine(context.Background(), Config{Threads: 2, BatchSize: 1}, doc, sc, func(LineScore) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	// at most the in-flight jobs and buffered results finish after the error
	assert.Less(t, sc.calls.Load(), int64(100), "workers kept scoring after visit failed")
}

func TestSum_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sum(ctx, Config{Threads: 2, BatchSize: 1}, strings.Repeat(fixture, 10), engine.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func ExampleSum() {
	total, _ := Sum(context.Background(), Config{Threads: 2}, "1abc2\npqr3stu8vwx\n", engine.Default())
	fmt.Println(total)
	// Output: 50
}
