package lockstep

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T, isSupervisor bool, opts Options) *Engine {
	t.Helper()
	e := New("game-1", "room-1", "casual", isSupervisor, opts)
	assert.NoError(t, e.Init())
	t.Cleanup(e.Close)
	return e
}

func TestEngine_Admission(t *testing.T) {
	e := newTestEngine(t, false, Options{MaxUsers: 2})
	ctx := context.Background()

	assert.NoError(t, e.EnterRoom(ctx, "u1"))
	assert.NoError(t, e.EnterRoom(ctx, "u2"))
	assert.Equal(t, 2, e.GetUserCount())
	assert.Equal(t, []string{"u1", "u2"}, e.GetUsersID())

	// 重複進房
	assert.ErrorIs(t, e.EnterRoom(ctx, "u1"), ErrAlreadyInRoom)
	// 滿房
	assert.ErrorIs(t, e.EnterRoom(ctx, "u3"), ErrRoomFull)
}

func TestEngine_LeaveRoom(t *testing.T) {
	e := newTestEngine(t, false, Options{})
	ctx := context.Background()

	assert.NoError(t, e.EnterRoom(ctx, "u1"))
	assert.NoError(t, e.EnterRoom(ctx, "u2"))

	assert.True(t, e.LeaveRoom("u1"))
	assert.Equal(t, []string{"u2"}, e.GetUsersID())

	// 不在房內
	assert.False(t, e.LeaveRoom("u1"))
	assert.False(t, e.LeaveRoom("ghost"))

	// 離開後可重新進房
	assert.NoError(t, e.EnterRoom(ctx, "u1"))
	assert.Equal(t, 2, e.GetUserCount())
}

func TestEngine_FrameAdvance(t *testing.T) {
	e := newTestEngine(t, false, Options{FrameInterval: 5 * time.Millisecond})

	// Logic 模式：幀數由 ticker 單調推進
	assert.Eventually(t, func() bool {
		return e.GetFrameCount() > 0
	}, time.Second, 5*time.Millisecond)

	before := e.GetFrameCount()
	assert.Eventually(t, func() bool {
		return e.GetFrameCount() > before
	}, time.Second, 5*time.Millisecond)
}

func TestEngine_SupervisorFrameFollowsEvents(t *testing.T) {
	e := newTestEngine(t, true, Options{FrameInterval: time.Millisecond})

	// Supervisor 模式不自走幀
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), e.GetFrameCount())

	// 幀數跟隨重放事件推進，且只前進不回退
	e.RecvEventFromLogic(10, "spawn", []byte("a"))
	assert.Equal(t, int64(10), e.GetFrameCount())

	e.RecvEventFromLogic(8, "late", []byte("b"))
	assert.Equal(t, int64(10), e.GetFrameCount())

	log := e.ReplayLog()
	assert.Len(t, log, 2)
	assert.Equal(t, "spawn", log[0].Type)
	assert.Equal(t, "late", log[1].Type)
}

func TestEngine_ReplayLogBounded(t *testing.T) {
	e := newTestEngine(t, true, Options{})

	for i := 0; i < maxReplayLog+10; i++ {
		e.RecvEventFromLogic(int64(i), "tick", nil)
	}

	log := e.ReplayLog()
	assert.Len(t, log, maxReplayLog)
	// 留下的是最新的事件
	assert.Equal(t, int64(maxReplayLog+9), log[len(log)-1].FrameCount)
}

func TestEngine_EnterRoom_AfterClose(t *testing.T) {
	e := New("game-1", "room-1", "casual", false, Options{})
	assert.NoError(t, e.Init())
	e.Close()

	err := e.EnterRoom(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrEngineClosed)

	// 重複關閉是安全的
	e.Close()
	e.OnClose()
}

func TestEngine_EnterRoom_ContextTimeout(t *testing.T) {
	// 未啟動的引擎不處理准入請求，呼叫端靠 ctx 解脫
	e := New("game-1", "room-1", "casual", false, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := e.EnterRoom(ctx, "u1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_DoubleInit(t *testing.T) {
	e := New("game-1", "room-1", "casual", false, Options{})
	assert.NoError(t, e.Init())
	defer e.Close()

	assert.Error(t, e.Init())
}

func TestEngine_ConcurrentAdmission(t *testing.T) {
	e := newTestEngine(t, false, Options{MaxUsers: 100})
	ctx := context.Background()

	done := make(chan error, 100)
	for i := 0; i < 100; i++ {
		go func(n int) {
			done <- e.EnterRoom(ctx, fmt.Sprintf("u%d", n))
		}(i)
	}
	for i := 0; i < 100; i++ {
		assert.NoError(t, <-done)
	}
	assert.Equal(t, 100, e.GetUserCount())
}
