package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"safespace/internal/chat"
	"safespace/internal/config"
	"safespace/internal/models"
	"safespace/internal/notify"
	"safespace/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource is a deterministic ContentSource that records how many
// times each list was produced.
type countingSource struct {
	postCalls     int
	roomCalls     int
	resourceCalls int
}

func (s *countingSource) Posts(page int) []models.Post {
	s.postCalls++
	posts := make([]models.Post, 5)
	for i := range posts {
		posts[i] = models.Post{
			ID:           int64((page-1)*5 + i + 1),
			Content:      "demo post",
			Category:     models.CategorySupport,
			AuthorHandle: "Taylor_ab12",
			LikesCount:   3,
		}
	}
	return posts
}

func (s *countingSource) Comments(postID int64) []models.Comment {
	return []models.Comment{{ID: 900, PostID: postID, Content: "demo comment"}}
}

func (s *countingSource) Rooms() []models.ChatRoom {
	s.roomCalls++
	return []models.ChatRoom{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}
}

func (s *countingSource) Messages(roomID int64) []models.ChatMessage {
	return []models.ChatMessage{{ID: 800, RoomID: roomID, Content: "backlog"}}
}

func (s *countingSource) Resources() []models.Resource {
	s.resourceCalls++
	return []models.Resource{{ID: 1, Title: "resource"}}
}

func (s *countingSource) FeedMessage(roomID int64) models.ChatMessage {
	return models.ChatMessage{ID: 700, RoomID: roomID, Content: "live"}
}

func (s *countingSource) SessionHandle() string { return "Anonymous_test01" }

// recordingRenderer captures every render request.
type recordingRenderer struct {
	views []View
	snaps []store.Snapshot
}

func (r *recordingRenderer) Render(view View, snap store.Snapshot) {
	r.views = append(r.views, view)
	r.snaps = append(r.snaps, snap)
}

type fixture struct {
	controller *Controller
	store      *store.Store
	source     *countingSource
	notices    *notify.Center
	renderer   *recordingRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{NoticeTTL: time.Minute}
	st := store.New()
	src := &countingSource{}
	notices := notify.NewCenter(cfg.NoticeTTL)
	mgr := chat.NewManager(st, src, chat.WithPeriod(time.Hour), chat.WithJoinLatency(0))
	renderer := &recordingRenderer{}
	c := NewController(cfg, st, src, notices, mgr, renderer)
	t.Cleanup(mgr.Leave)
	return &fixture{controller: c, store: st, source: src, notices: notices, renderer: renderer}
}

func lastNotice(t *testing.T, notices *notify.Center) notify.Notice {
	t.Helper()
	active := notices.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestNewControllerInitializesSession(t *testing.T) {
	f := newFixture(t)
	session := f.store.Session()
	assert.True(t, session.LoggedIn)
	assert.Equal(t, "Anonymous_test01", session.Handle)
	assert.Equal(t, ViewWelcome, f.controller.View())
}

func TestEnterCommunity(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.controller.EnterCommunity(context.Background()))

	assert.Equal(t, ViewPosts, f.controller.View())
	assert.Len(t, f.store.Posts(), 5)
	assert.Len(t, f.store.Rooms(), 2)
	assert.Len(t, f.store.Resources(), 1)
	require.NotEmpty(t, f.renderer.views)
	assert.Equal(t, ViewPosts, f.renderer.views[len(f.renderer.views)-1])
}

func TestSwitchTabCachesLoadedLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))
	require.NoError(t, f.controller.SwitchTab(ctx, ViewResources))
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))
	require.NoError(t, f.controller.SwitchTab(ctx, ViewResources))

	assert.Equal(t, 1, f.source.postCalls)
	assert.Equal(t, 1, f.source.resourceCalls)
}

func TestSwitchTabUnknown(t *testing.T) {
	f := newFixture(t)
	err := f.controller.SwitchTab(context.Background(), "profile")
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSwitchTabChatKeepsJoinedRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewChatList))
	require.NoError(t, f.controller.JoinRoom(ctx, 1))

	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))
	require.NoError(t, f.controller.SwitchTab(ctx, ViewChatList))

	assert.Equal(t, ViewChatRoom, f.controller.View())
	assert.Equal(t, int64(1), f.store.CurrentRoom())
}

func TestSubmitPost(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.SwitchTab(context.Background(), ViewPosts))

	post, err := f.controller.SubmitPost(context.Background(), "  hello title  ", "hello", models.CategoryShare)
	require.NoError(t, err)

	assert.Equal(t, "hello title", post.Title)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, models.CategoryShare, post.Category)
	assert.Equal(t, "Anonymous_test01", post.AuthorHandle)

	posts := f.store.Posts()
	require.Len(t, posts, 6)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Zero(t, posts[0].LikesCount)
	assert.Zero(t, posts[0].CommentsCount)
	assert.False(t, posts[0].Liked)

	assert.Equal(t, notify.KindSuccess, lastNotice(t, f.notices).Kind)
}

func TestSubmitPostEmptyContent(t *testing.T) {
	f := newFixture(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := f.controller.SubmitPost(context.Background(), "", content, models.CategorySupport)
		require.Error(t, err)
	}
	assert.Empty(t, f.store.Posts())
	assert.Equal(t, notify.KindError, lastNotice(t, f.notices).Kind)
}

func TestSubmitPostLengthBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.controller.SubmitPost(ctx, "", strings.Repeat("a", models.MaxPostContentLen), models.CategorySupport)
	assert.NoError(t, err)

	_, err = f.controller.SubmitPost(ctx, "", strings.Repeat("a", models.MaxPostContentLen+1), models.CategorySupport)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	assert.Len(t, f.store.Posts(), 1)
}

func TestSubmitPostDefaultCategory(t *testing.T) {
	f := newFixture(t)
	post, err := f.controller.SubmitPost(context.Background(), "", "content", "")
	require.NoError(t, err)
	assert.Equal(t, models.CategorySupport, post.Category)
}

func TestToggleLikeIsInvolutive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))

	before, _ := f.store.Post(1)

	liked, err := f.controller.ToggleLike(ctx, 1)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, before.LikesCount+1, liked.LikesCount)

	unliked, err := f.controller.ToggleLike(ctx, 1)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, before.LikesCount, unliked.LikesCount)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.ToggleLike(context.Background(), 42)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))

	before, _ := f.store.Post(1)

	comment, err := f.controller.AddComment(ctx, 1, "thanks for sharing")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous_test01", comment.AuthorHandle)

	after, _ := f.store.Post(1)
	assert.Equal(t, before.CommentsCount+1, after.CommentsCount)
	require.Len(t, f.store.Comments(1), 1)
}

func TestAddCommentEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))

	_, err := f.controller.AddComment(ctx, 1, "   ")
	require.Error(t, err)
	assert.Empty(t, f.store.Comments(1))
}

func TestLoadComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))

	comments, err := f.controller.LoadComments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(2), comments[0].PostID)
}

func TestLoadMoreStopsAtLastPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewPosts))
	require.Len(t, f.store.Posts(), 5)

	require.NoError(t, f.controller.LoadMore(ctx))
	assert.Len(t, f.store.Posts(), 10)

	require.NoError(t, f.controller.LoadMore(ctx))
	assert.Len(t, f.store.Posts(), 15)
	posts := f.store.Posts()
	assert.Equal(t, int64(15), posts[14].ID)

	// Page 3 is the end of the demo feed.
	require.NoError(t, f.controller.LoadMore(ctx))
	assert.Len(t, f.store.Posts(), 15)
	assert.Equal(t, 3, f.source.postCalls)
}

func TestLoadGuardMakesSecondLoadANoOp(t *testing.T) {
	f := newFixture(t)

	// Simulate an outstanding load.
	require.True(t, f.store.TryBeginLoad())

	require.NoError(t, f.controller.SwitchTab(context.Background(), ViewPosts))
	assert.Empty(t, f.store.Posts())
	assert.Zero(t, f.source.postCalls)

	f.store.EndLoad()
	require.NoError(t, f.controller.SwitchTab(context.Background(), ViewPosts))
	assert.Len(t, f.store.Posts(), 5)
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewChatList))
	require.NoError(t, f.controller.JoinRoom(ctx, 1))

	msg, err := f.controller.SendMessage(ctx, "hi everyone")
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.RoomID)
	assert.Equal(t, "Anonymous_test01", msg.AuthorHandle)

	messages := f.store.Messages()
	assert.Equal(t, msg.ID, messages[len(messages)-1].ID)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No room joined.
	_, err := f.controller.SendMessage(ctx, "hello")
	require.Error(t, err)

	require.NoError(t, f.controller.SwitchTab(ctx, ViewChatList))
	require.NoError(t, f.controller.JoinRoom(ctx, 1))
	before := len(f.store.Messages())

	_, err = f.controller.SendMessage(ctx, "  ")
	require.Error(t, err)
	assert.Len(t, f.store.Messages(), before)
}

func TestJoinAndLeaveRoomViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.SwitchTab(ctx, ViewChatList))

	require.NoError(t, f.controller.JoinRoom(ctx, 2))
	assert.Equal(t, ViewChatRoom, f.controller.View())
	assert.Equal(t, int64(2), f.store.CurrentRoom())

	f.controller.LeaveRoom()
	assert.Equal(t, ViewChatList, f.controller.View())
	assert.Zero(t, f.store.CurrentRoom())
}

func TestSubmitReport(t *testing.T) {
	f := newFixture(t)

	report, err := f.controller.SubmitReport(context.Background(), "post", 1, "harassment", "details")
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "harassment", report.Reason)
	assert.Equal(t, notify.KindSuccess, lastNotice(t, f.notices).Kind)
}

func TestSubmitReportRequiresReason(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.SubmitReport(context.Background(), "post", 1, "  ", "")
	require.Error(t, err)
}

func TestLogoutResetsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.EnterCommunity(ctx))
	require.NoError(t, f.controller.JoinRoom(ctx, 1))

	require.NoError(t, f.controller.Logout(ctx))

	assert.Equal(t, ViewWelcome, f.controller.View())
	assert.Empty(t, f.store.Posts())
	assert.Zero(t, f.store.CurrentRoom())
	assert.False(t, f.store.Session().LoggedIn)

	// Entering again creates a fresh session and reloads content.
	require.NoError(t, f.controller.EnterCommunity(ctx))
	assert.True(t, f.store.Session().LoggedIn)
	assert.Len(t, f.store.Posts(), 5)
}

func TestEmergencyExitClearsStateImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.controller.EnterCommunity(ctx))
	f.notices.Success("something")

	f.controller.EmergencyExit()

	assert.Equal(t, ViewWelcome, f.controller.View())
	assert.Empty(t, f.store.Posts())
	assert.Empty(t, f.notices.Active())
}

func TestCancelledContextLeavesStoreUnchanged(t *testing.T) {
	cfg := &config.Config{NoticeTTL: time.Minute, DelayPosts: 50 * time.Millisecond, DelayCreatePost: 50 * time.Millisecond}
	st := store.New()
	src := &countingSource{}
	notices := notify.NewCenter(cfg.NoticeTTL)
	mgr := chat.NewManager(st, src, chat.WithPeriod(time.Hour))
	c := NewController(cfg, st, src, notices, mgr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.SwitchTab(ctx, ViewPosts)
	require.Error(t, err)
	assert.Empty(t, st.Posts())
	assert.False(t, st.Loading())

	_, err = c.SubmitPost(ctx, "", "content", models.CategorySupport)
	require.Error(t, err)
	assert.Empty(t, st.Posts())
}
