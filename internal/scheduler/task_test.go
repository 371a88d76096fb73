package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTask_Schedule(t *testing.T) {
	var runs atomic.Int32
	task := NewTask(func() { runs.Add(1) })
	defer task.Stop()

	task.Schedule(10 * time.Millisecond)
	assert.True(t, task.Pending())

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, task.Pending())
}

func TestTask_ScheduleSupersedes(t *testing.T) {
	var runs atomic.Int32
	task := NewTask(func() { runs.Add(1) })
	defer task.Stop()

	for i := 0; i < 5; i++ {
		task.Schedule(100 * time.Millisecond)
		time.Sleep(time.Millisecond)
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestTask_Cancel(t *testing.T) {
	var runs atomic.Int32
	task := NewTask(func() { runs.Add(1) })
	defer task.Stop()

	assert.False(t, task.Cancel())

	task.Schedule(20 * time.Millisecond)
	assert.True(t, task.Cancel())
	assert.False(t, task.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestTask_StopWaitsAndDisables(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	task := NewTask(func() {
		close(started)
		<-release
		finished.Store(true)
	})

	task.Schedule(time.Millisecond)
	<-started

	stopped := make(chan struct{})
	go func() {
		task.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the task was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-stopped
	assert.True(t, finished.Load())

	task.Schedule(time.Millisecond)
	assert.False(t, task.Pending())
}

func TestTask_RescheduleFromRun(t *testing.T) {
	var runs atomic.Int32
	var task *Task
	task = NewTask(func() {
		if runs.Add(1) < 3 {
			task.Schedule(time.Millisecond)
		}
	})
	defer task.Stop()

	task.Schedule(time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() == 3 }, time.Second, 5*time.Millisecond)
}
