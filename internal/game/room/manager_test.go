package room_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/JoeShih716/go-room-server/internal/core/domain"
	"github.com/JoeShih716/go-room-server/internal/core/ports"
	"github.com/JoeShih716/go-room-server/internal/game/match"
	"github.com/JoeShih716/go-room-server/internal/game/room"
	mock_ports "github.com/JoeShih716/go-room-server/test/mocks/ports"
)

type managerFixture struct {
	registry *match.Registry
	engine   *mock_ports.MockEngine
	syncPool *mock_ports.MockEventSyncChannel
	users    *mock_ports.MockUserManager
	mgr      *room.Manager
}

func newManagerFixture(ctrl *gomock.Controller) *managerFixture {
	f := &managerFixture{
		registry: match.NewRegistry(nil),
		engine:   mock_ports.NewMockEngine(ctrl),
		syncPool: mock_ports.NewMockEventSyncChannel(ctrl),
		users:    mock_ports.NewMockUserManager(ctrl),
	}
	f.mgr = room.NewManager("game-1", f.registry, f.users,
		func(gameID, roomID, roomName string, isSupervisor bool) ports.Engine {
			return f.engine
		},
		func(gameID, roomID string) ports.EventSyncChannel {
			return f.syncPool
		},
		nil)
	return f
}

func TestManager_CreateRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	f.syncPool.EXPECT().Start().Return(nil)
	f.engine.EXPECT().Init().Return(nil)

	r, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "alice",
		RoomName: "ranked",
		UserIDs:  []string{"alice", "bob"},
		SupNodes: []string{"node-a"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, int64(1), f.mgr.Count())

	// 配對關係與所有 metadata 已寫入註冊表
	assert.Equal(t, []string{"alice", "bob"}, f.registry.GetUserIDList("room-1"))
	assert.True(t, f.registry.IsLogicRoom("room-1"))
	assert.True(t, f.registry.IsLogicRoomByUser("game-1", "alice"))

	name, found := f.registry.GetRoomName("room-1")
	assert.True(t, found)
	assert.Equal(t, "ranked", name)

	master, found := f.registry.GetRoomMaster("room-1")
	assert.True(t, found)
	assert.Equal(t, "alice", master)

	nodes, found := f.registry.GetRoomSupervisor("game-1", "room-1")
	assert.True(t, found)
	assert.Equal(t, []string{"node-a"}, nodes)

	// 正反向查找
	got, found := f.mgr.GetRoom("room-1")
	assert.True(t, found)
	assert.Equal(t, r, got)

	got, found = f.mgr.GetRoomByUser("bob")
	assert.True(t, found)
	assert.Equal(t, r, got)
}

func TestManager_CreateRoom_Supervisor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	// Supervisor 房間不建同步通道
	f.engine.EXPECT().Init().Return(nil)

	r, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "alice",
		UserIDs:  []string{"alice"},
		WorkType: domain.WorkTypeSupervisor,
	})
	assert.NoError(t, err)
	assert.True(t, r.IsSupervisor())
	assert.False(t, f.registry.IsLogicRoom("room-1"))
}

func TestManager_CreateRoom_DuplicateRoomID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	f.syncPool.EXPECT().Start().Return(nil)
	f.engine.EXPECT().Init().Return(nil)

	first, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "alice",
		RoomName: "ranked",
		UserIDs:  []string{"alice"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.NoError(t, err)

	// 同 ID 的活躍房間不得被覆蓋：第二次建房直接失敗，
	// 既有房間與計數保持不變
	_, err = f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "bob",
		RoomName: "casual",
		UserIDs:  []string{"bob"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.Error(t, err)

	got, ok := f.mgr.GetRoom("room-1")
	assert.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, int64(1), f.mgr.Count())
}

func TestManager_CreateRoom_InvalidAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	_, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "",
		UserIDs:  []string{"alice"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.Error(t, err)
	assert.Equal(t, int64(0), f.mgr.Count())
}

func TestManager_CreateRoom_InitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	f.syncPool.EXPECT().Start().Return(nil)
	f.engine.EXPECT().Init().Return(errors.New("engine boom"))

	_, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "alice",
		UserIDs:  []string{"alice"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.Error(t, err)

	// 失敗的建房必須回滾註冊表
	assert.Equal(t, []string{}, f.registry.GetUserIDList("room-1"))
	_, found := f.registry.GetRoomWorkType("room-1")
	assert.False(t, found)
	_, found = f.registry.GetRoomWorkTypeByUser("game-1", "alice")
	assert.False(t, found)
	assert.Equal(t, int64(0), f.mgr.Count())
}

func TestManager_CloseRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	f.syncPool.EXPECT().Start().Return(nil)
	f.engine.EXPECT().Init().Return(nil)

	_, err := f.mgr.CreateRoom(room.Assignment{
		RoomID:   "room-1",
		OwnerID:  "alice",
		UserIDs:  []string{"alice"},
		WorkType: domain.WorkTypeLogic,
	})
	assert.NoError(t, err)

	f.engine.EXPECT().GetUsersID().Return([]string{"alice"})
	f.users.EXPECT().Logout("alice").Return(true)
	f.engine.EXPECT().OnClose()
	f.syncPool.EXPECT().Stop()

	assert.True(t, f.mgr.CloseRoom("room-1"))
	assert.Equal(t, int64(0), f.mgr.Count())

	_, found := f.mgr.GetRoom("room-1")
	assert.False(t, found)

	// 已關閉的房間再關一次回傳 false
	assert.False(t, f.mgr.CloseRoom("room-1"))
}

func TestManager_Range(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newManagerFixture(ctrl)

	f.syncPool.EXPECT().Start().Return(nil).Times(2)
	f.engine.EXPECT().Init().Return(nil).Times(2)

	for _, id := range []string{"room-1", "room-2"} {
		_, err := f.mgr.CreateRoom(room.Assignment{
			RoomID:   id,
			OwnerID:  "alice",
			UserIDs:  []string{"u-" + id},
			WorkType: domain.WorkTypeLogic,
		})
		assert.NoError(t, err)
	}

	seen := make(map[string]bool)
	f.mgr.Range(func(r *room.Room) bool {
		seen[r.ID()] = true
		return true
	})
	assert.Len(t, seen, 2)
	assert.True(t, seen["room-1"] && seen["room-2"])
}
