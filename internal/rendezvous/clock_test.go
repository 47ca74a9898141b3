package rendezvous

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_AdvanceFiresDueTimers(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))

	fired := false
	c.AfterFunc(time.Second, func() { fired = true })

	c.Advance(500 * time.Millisecond)
	assert.False(t, fired)

	c.Advance(500 * time.Millisecond)
	assert.True(t, fired)
}

func TestFakeClock_AdvanceOrdersCallbacksByDeadline(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))

	var order []int
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })

	c.Advance(3 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestFakeClock_StoppedTimerDoesNotFire(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))

	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, timer.Stop())

	c.Advance(time.Hour)
	assert.False(t, fired)
	assert.False(t, timer.Stop())
}

func TestFakeClock_CallbackCanRescheduleWithoutDeadlock(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))

	runs := 0
	var reschedule func()
	reschedule = func() {
		runs++
		if runs < 3 {
			c.AfterFunc(time.Second, reschedule)
		}
	}
	c.AfterFunc(time.Second, reschedule)

	c.Advance(time.Second)
	assert.Equal(t, 1, runs)

	c.Advance(time.Second)
	assert.Equal(t, 2, runs)
}

func TestRealClock_NowAdvances(t *testing.T) {
	c := NewRealClock()
	a := c.Now()
	time.Sleep(time.Millisecond)
	b := c.Now()
	assert.True(t, b.After(a))
}
