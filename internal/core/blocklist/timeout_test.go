package blocklist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatingTask_ChainsOneShots(t *testing.T) {
	exec := newManualExecutor(baseTime)
	var runs []time.Time
	task := newRepeatingTask(exec, time.Second, func(ctx context.Context) {
		exec.AssertRunningInMainThread(ctx)
		runs = append(runs, exec.Now())
	})

	task.arm()
	require.Equal(t, 1, exec.pending())

	for i := 0; i < 3; i++ {
		exec.advance(time.Second)
		assert.Equal(t, 1, exec.pending())
	}
	require.Len(t, runs, 3)
	assert.Equal(t, []time.Time{
		baseTime.Add(time.Second),
		baseTime.Add(2 * time.Second),
		baseTime.Add(3 * time.Second),
	}, runs)
}

// 慢执行之后下一次检查顺延
func TestRepeatingTask_DelayedRunPostpones(t *testing.T) {
	exec := newManualExecutor(baseTime)
	runs := 0
	task := newRepeatingTask(exec, time.Second, func(context.Context) { runs++ })
	task.arm()

	exec.advance(3500 * time.Millisecond)
	assert.Equal(t, 1, runs)

	exec.advance(900 * time.Millisecond)
	assert.Equal(t, 1, runs)

	exec.advance(100 * time.Millisecond)
	assert.Equal(t, 2, runs)
}

func TestRepeatingTask_Stop(t *testing.T) {
	exec := newManualExecutor(baseTime)
	runs := 0
	task := newRepeatingTask(exec, time.Second, func(context.Context) { runs++ })
	task.arm()

	assert.True(t, task.stop())
	assert.False(t, task.stop())
	assert.True(t, task.isStopped())
	assert.Zero(t, exec.pending())

	exec.advance(5 * time.Second)
	assert.Zero(t, runs)

	task.arm()
	assert.Zero(t, exec.pending(), "arm after stop is a no-op")
}

func TestRepeatingTask_StopBeforeArm(t *testing.T) {
	exec := newManualExecutor(baseTime)
	task := newRepeatingTask(exec, time.Second, func(context.Context) {})

	assert.True(t, task.stop())
	task.arm()

	assert.Zero(t, exec.pending())
}

func TestRepeatingTask_StopFromRun(t *testing.T) {
	exec := newManualExecutor(baseTime)
	var task *repeatingTask
	runs := 0
	task = newRepeatingTask(exec, time.Second, func(context.Context) {
		runs++
		task.stop()
	})
	task.arm()

	exec.advance(10 * time.Second)

	assert.Equal(t, 1, runs)
	assert.Zero(t, exec.pending())
}
