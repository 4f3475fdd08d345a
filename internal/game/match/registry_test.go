package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
)

func TestRegistry_StoreResult(t *testing.T) {
	r := NewRegistry(nil)

	ok := r.StoreResult("room-1", "game-1", []string{"alice", "bob"}, []string{"node-a"})
	assert.True(t, ok)

	// 正向索引：順序必須與存入時一致
	assert.Equal(t, []string{"alice", "bob"}, r.GetUserIDList("room-1"))

	// 反向索引：每個用戶都查得到房間
	roomID, found := r.GetRoomID("game-1", "alice")
	assert.True(t, found)
	assert.Equal(t, "room-1", roomID)

	roomID, found = r.GetRoomID("game-1", "bob")
	assert.True(t, found)
	assert.Equal(t, "room-1", roomID)

	nodes, found := r.GetSupNodeList("room-1")
	assert.True(t, found)
	assert.Equal(t, []string{"node-a"}, nodes)
}

func TestRegistry_StoreResult_BadArgs(t *testing.T) {
	r := NewRegistry(nil)

	// roomID 為空
	assert.False(t, r.StoreResult("", "game-1", []string{"alice"}, nil))
	// userIDs 為 nil
	assert.False(t, r.StoreResult("room-1", "game-1", nil, nil))
	// userIDs 為空
	assert.False(t, r.StoreResult("room-1", "game-1", []string{}, nil))

	// 失敗的寫入不得留下任何痕跡
	assert.Empty(t, r.GetUserIDList("room-1"))
	_, found := r.GetRoomID("game-1", "alice")
	assert.False(t, found)
}

func TestRegistry_StoreResult_Overwrite(t *testing.T) {
	r := NewRegistry(nil)

	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice"}, nil))
	// 同一用戶被重新配對到另一個房間：last-writer-wins
	assert.True(t, r.StoreResult("room-2", "game-1", []string{"alice"}, nil))

	roomID, found := r.GetRoomID("game-1", "alice")
	assert.True(t, found)
	assert.Equal(t, "room-2", roomID)

	// 刪除舊房間不可波及新映射
	assert.True(t, r.DeleteResult("room-1"))
	roomID, found = r.GetRoomID("game-1", "alice")
	assert.True(t, found)
	assert.Equal(t, "room-2", roomID)
}

func TestRegistry_DeleteResult(t *testing.T) {
	r := NewRegistry(nil)

	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice", "bob"}, nil))
	r.SetRoomName("room-1", "casual")
	r.SetRoomMaster("room-1", "alice")

	assert.True(t, r.DeleteResult("room-1"))

	assert.Equal(t, []string{}, r.GetUserIDList("room-1"))
	for _, u := range []string{"alice", "bob"} {
		_, found := r.GetRoomID("game-1", u)
		assert.False(t, found, "user %s should have no room after delete", u)
	}
	_, found := r.GetRoomName("room-1")
	assert.False(t, found)
	_, found = r.GetRoomMaster("room-1")
	assert.False(t, found)

	// 已刪除的房間再刪一次回傳 false
	assert.False(t, r.DeleteResult("room-1"))
}

func TestRegistry_DeleteResult_UnknownRoom(t *testing.T) {
	r := NewRegistry(nil)
	assert.False(t, r.DeleteResult("no-such-room"))
}

func TestRegistry_GetSupNodeList_Asymmetry(t *testing.T) {
	r := NewRegistry(nil)

	// 未知房間：GetUserIDList 回空 slice，GetSupNodeList 回 ok=false
	assert.Equal(t, []string{}, r.GetUserIDList("no-such-room"))
	_, found := r.GetSupNodeList("no-such-room")
	assert.False(t, found)

	// 存在但沒有監督節點的房間：回空列表且 ok=true
	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice"}, nil))
	nodes, found := r.GetSupNodeList("room-1")
	assert.True(t, found)
	assert.Empty(t, nodes)
}

func TestRegistry_RoomWorkType(t *testing.T) {
	r := NewRegistry(nil)

	r.SetRoomWorkType("room-1", domain.WorkTypeLogic)
	wt, found := r.GetRoomWorkType("room-1")
	assert.True(t, found)
	assert.Equal(t, domain.WorkTypeLogic, wt)
	assert.True(t, r.IsLogicRoom("room-1"))

	r.SetRoomWorkType("room-1", domain.WorkTypeSupervisor)
	assert.False(t, r.IsLogicRoom("room-1"))

	r.DeleteRoomWorkType("room-1")
	_, found = r.GetRoomWorkType("room-1")
	assert.False(t, found)
	assert.False(t, r.IsLogicRoom("room-1"))

	// 刪除不存在的角色是 no-op
	r.DeleteRoomWorkType("room-1")
}

func TestRegistry_RoomWorkTypeByUser(t *testing.T) {
	r := NewRegistry(nil)

	// 批次設定
	r.SetRoomWorkTypeByUser("game-1", []string{"alice", "bob"}, domain.WorkTypeLogic)

	for _, u := range []string{"alice", "bob"} {
		wt, found := r.GetRoomWorkTypeByUser("game-1", u)
		assert.True(t, found)
		assert.Equal(t, domain.WorkTypeLogic, wt)
		assert.True(t, r.IsLogicRoomByUser("game-1", u))
	}

	// 不同遊戲互不影響
	_, found := r.GetRoomWorkTypeByUser("game-2", "alice")
	assert.False(t, found)

	r.DeleteRoomWorkTypeByUser("game-1", "alice")
	_, found = r.GetRoomWorkTypeByUser("game-1", "alice")
	assert.False(t, found)
	// bob 不受影響
	assert.True(t, r.IsLogicRoomByUser("game-1", "bob"))
}

func TestRegistry_RoomSupervisor(t *testing.T) {
	r := NewRegistry(nil)

	r.SetRoomSupervisor("game-1", "room-1", []string{"node-a", "node-b"})
	nodes, found := r.GetRoomSupervisor("game-1", "room-1")
	assert.True(t, found)
	assert.Equal(t, []string{"node-a", "node-b"}, nodes)

	// 暫存表的生命週期與 RoomRecord 無關：刪房不清暫存
	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice"}, nil))
	assert.True(t, r.DeleteResult("room-1"))
	_, found = r.GetRoomSupervisor("game-1", "room-1")
	assert.True(t, found)

	r.DeleteRoomSupervisor("game-1", "room-1")
	_, found = r.GetRoomSupervisor("game-1", "room-1")
	assert.False(t, found)
}

func TestRegistry_RoomMetadata(t *testing.T) {
	r := NewRegistry(nil)

	_, found := r.GetRoomName("room-1")
	assert.False(t, found)

	r.SetRoomName("room-1", "ranked")
	r.SetRoomMaster("room-1", "alice")

	name, found := r.GetRoomName("room-1")
	assert.True(t, found)
	assert.Equal(t, "ranked", name)

	master, found := r.GetRoomMaster("room-1")
	assert.True(t, found)
	assert.Equal(t, "alice", master)
}

// TestRegistry_Scenario 完整走一遍配對->角色->關房流程
func TestRegistry_Scenario(t *testing.T) {
	r := NewRegistry(nil)

	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice", "bob"}, []string{}))

	roomID, found := r.GetRoomID("game-1", "alice")
	assert.True(t, found)
	assert.Equal(t, "room-1", roomID)

	r.SetRoomWorkType("room-1", domain.WorkTypeLogic)
	assert.True(t, r.IsLogicRoom("room-1"))

	assert.True(t, r.DeleteResult("room-1"))
	assert.Equal(t, []string{}, r.GetUserIDList("room-1"))
}

func TestRegistry_Inspect(t *testing.T) {
	r := NewRegistry(nil)
	assert.True(t, r.StoreResult("room-1", "game-1", []string{"alice"}, nil))
	r.SetRoomWorkType("room-1", domain.WorkTypeLogic)
	r.SetRoomName("room-1", "casual")

	out := r.Inspect()
	assert.Contains(t, out, "room-1")
	assert.Contains(t, out, "LOGIC")
	assert.Contains(t, out, "casual")
}
