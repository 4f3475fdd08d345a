package match

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRegistry_BidirectionalConsistency 在隨機的 store/delete 交錯下，
// 驗證反向索引永遠恰好是現存 RoomRecord 的逆映射：
// 每個在房用戶查得到自己的房間，且沒有指向已刪房間的殘留索引。
func TestRegistry_BidirectionalConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry(nil)
		const gameID = "game-1"

		// 模型：房間 -> 用戶列表 (鏡像 registry 應有的狀態)
		model := make(map[string][]string)
		userRoom := make(map[string]string)

		roomGen := rapid.SampledFrom([]string{"r1", "r2", "r3", "r4"})
		userGen := rapid.SampledFrom([]string{"u1", "u2", "u3", "u4", "u5"})

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			roomID := roomGen.Draw(t, "room")
			if rapid.Bool().Draw(t, "store") {
				n := rapid.IntRange(1, 3).Draw(t, "n_users")
				users := make([]string, 0, n)
				seen := make(map[string]bool)
				for len(users) < n {
					u := userGen.Draw(t, "user")
					if !seen[u] {
						seen[u] = true
						users = append(users, u)
					}
				}
				if r.StoreResult(roomID, gameID, users, nil) {
					model[roomID] = users
					for _, u := range users {
						userRoom[u] = roomID
					}
				}
			} else {
				deleted := r.DeleteResult(roomID)
				_, exists := model[roomID]
				if deleted != exists {
					t.Fatalf("DeleteResult(%q) = %v, model says exists = %v", roomID, deleted, exists)
				}
				if exists {
					for _, u := range model[roomID] {
						if userRoom[u] == roomID {
							delete(userRoom, u)
						}
					}
					delete(model, roomID)
				}
			}

			// 不變量檢查
			for roomID, users := range model {
				got := r.GetUserIDList(roomID)
				if len(got) != len(users) {
					t.Fatalf("room %q: got %v, want %v", roomID, got, users)
				}
			}
			for u, want := range userRoom {
				got, found := r.GetRoomID(gameID, u)
				if !found || got != want {
					t.Fatalf("user %q: got (%q, %v), want %q", u, got, found, want)
				}
			}
		}
	})
}
