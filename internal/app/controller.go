// Package app orchestrates the client's view state: tab navigation, content
// loading, submissions, and the transitions in and out of chat rooms. It owns
// no rendering; after each completed action it hands a snapshot to the
// configured Renderer.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"safespace/internal/chat"
	"safespace/internal/config"
	"safespace/internal/demo"
	"safespace/internal/models"
	"safespace/internal/notify"
	"safespace/internal/observability"
	"safespace/internal/store"

	"github.com/google/uuid"
)

// View names the screens the client can show.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewPosts     View = "posts"
	ViewChatList  View = "chat-list"
	ViewChatRoom  View = "chat-room"
	ViewResources View = "resources"
)

// maxPage caps the simulated post feed at three pages.
const maxPage = 3

// Renderer consumes read-only snapshots. Implementations must be idempotent
// for a given snapshot and must not mutate it.
type Renderer interface {
	Render(view View, snap store.Snapshot)
}

// Controller is the view controller. All public methods are safe for
// concurrent use; store mutations from one action complete before that
// action's render request is issued.
type Controller struct {
	mu       sync.Mutex
	view     View
	page     int
	cfg      *config.Config
	store    *store.Store
	source   demo.ContentSource
	notices  *notify.Center
	chat     *chat.Manager
	renderer Renderer
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// NewController creates a Controller and initializes the anonymous session.
// renderer may be nil, in which case render requests are dropped.
func NewController(cfg *config.Config, s *store.Store, source demo.ContentSource, notices *notify.Center, chatMgr *chat.Manager, renderer Renderer) *Controller {
	c := &Controller{
		view:     ViewWelcome,
		page:     1,
		cfg:      cfg,
		store:    s,
		source:   source,
		notices:  notices,
		chat:     chatMgr,
		renderer: renderer,
		sleep:    sleepCtx,
		now:      time.Now,
	}
	s.SetSession(models.Session{LoggedIn: true, Handle: source.SessionHandle()})
	return c
}

// View returns the current view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// EnterCommunity moves from the welcome screen into the community and loads
// the initial content.
func (c *Controller) EnterCommunity(ctx context.Context) error {
	if !c.store.Session().LoggedIn {
		c.store.SetSession(models.Session{LoggedIn: true, Handle: c.source.SessionHandle()})
	}
	c.setView(ViewPosts)
	if _, err := c.loadPosts(ctx, 1, false); err != nil {
		return err
	}
	if err := c.loadRooms(ctx); err != nil {
		return err
	}
	if err := c.loadResources(ctx); err != nil {
		return err
	}
	c.render()
	return nil
}

// SwitchTab selects a navigation tab. A tab whose list is already populated
// does not reload it; that caching policy is what keeps repeated switches
// from triggering redundant fetches.
func (c *Controller) SwitchTab(ctx context.Context, tab View) error {
	switch tab {
	case ViewPosts:
		c.setView(ViewPosts)
		if len(c.store.Posts()) == 0 {
			if _, err := c.loadPosts(ctx, 1, false); err != nil {
				return err
			}
		}
	case ViewChatList:
		if c.store.CurrentRoom() != 0 {
			c.setView(ViewChatRoom)
		} else {
			c.setView(ViewChatList)
			if len(c.store.Rooms()) == 0 {
				if err := c.loadRooms(ctx); err != nil {
					return err
				}
			}
		}
	case ViewResources:
		c.setView(ViewResources)
		if len(c.store.Resources()) == 0 {
			if err := c.loadResources(ctx); err != nil {
				return err
			}
		}
	default:
		return models.NewValidationError("Unknown tab: " + string(tab))
	}
	c.render()
	return nil
}

// SubmitPost validates and creates a new post, prepended to the feed. The
// id is the creation time in milliseconds; no server round trip is modeled
// beyond the artificial delay.
func (c *Controller) SubmitPost(ctx context.Context, title, content string, category models.Category) (models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if content == "" {
		c.notices.Error("Please enter a message")
		return models.Post{}, models.NewValidationError("Please enter a message")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		c.notices.Error("Message is too long. Please keep it under 2000 characters.")
		return models.Post{}, models.NewValidationError("Message is too long. Please keep it under 2000 characters.")
	}
	if category == "" {
		category = models.CategorySupport
	}
	if !category.Valid() {
		return models.Post{}, models.NewValidationError("Unknown post category: " + string(category))
	}

	if err := c.sleep(ctx, c.cfg.DelayCreatePost); err != nil {
		c.notices.Error("Failed to share your post. Please try again.")
		return models.Post{}, models.NewTransientError("Failed to share your post", err)
	}

	now := c.now()
	post := models.Post{
		ID:           now.UnixMilli(),
		Title:        title,
		Content:      content,
		Category:     category,
		AuthorHandle: c.store.Session().Handle,
		CreatedAt:    now,
	}
	c.store.AddPost(post)
	c.notices.Success("Your post has been shared anonymously")
	c.render()
	return post, nil
}

// ToggleLike flips the session user's like on a post. Optimistic and
// single-step; there is no concurrent writer to reconcile with.
func (c *Controller) ToggleLike(ctx context.Context, postID int64) (models.Post, error) {
	if err := c.sleep(ctx, c.cfg.DelayLike); err != nil {
		c.notices.Error("Failed to update like")
		return models.Post{}, models.NewTransientError("Failed to update like", err)
	}
	post, ok := c.store.ToggleLike(postID)
	if !ok {
		return models.Post{}, models.NewNotFoundError("post", postID)
	}
	c.render()
	return post, nil
}

// LoadComments fetches the demo comments for a post.
func (c *Controller) LoadComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, ok := c.store.Post(postID); !ok {
		return nil, models.NewNotFoundError("post", postID)
	}
	if err := c.sleep(ctx, c.cfg.DelayComments); err != nil {
		c.notices.Error("Failed to load comments")
		return nil, models.NewTransientError("Failed to load comments", err)
	}
	c.store.SetComments(postID, c.source.Comments(postID))
	observability.SimulatedLoads.WithLabelValues("comments").Inc()
	c.render()
	return c.store.Comments(postID), nil
}

// AddComment validates and appends a comment to a post. The post's comment
// counter is incremented independently of the stored list.
func (c *Controller) AddComment(ctx context.Context, postID int64, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		c.notices.Error("Please enter a comment")
		return models.Comment{}, models.NewValidationError("Please enter a comment")
	}
	if _, ok := c.store.Post(postID); !ok {
		return models.Comment{}, models.NewNotFoundError("post", postID)
	}
	if err := c.sleep(ctx, c.cfg.DelayCreateComment); err != nil {
		c.notices.Error("Failed to add comment")
		return models.Comment{}, models.NewTransientError("Failed to add comment", err)
	}

	now := c.now()
	comment := models.Comment{
		ID:           now.UnixMilli(),
		PostID:       postID,
		Content:      content,
		AuthorHandle: c.store.Session().Handle,
		CreatedAt:    now,
	}
	c.store.AppendComment(comment)
	c.store.IncrementCommentCount(postID)
	c.notices.Success("Comment added successfully")
	c.render()
	return comment, nil
}

// LoadMore appends the next page of posts, up to the three-page cap.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	target := c.page + 1
	c.mu.Unlock()
	if target > maxPage {
		return nil
	}
	loaded, err := c.loadPosts(ctx, target, true)
	if err != nil {
		return err
	}
	if loaded {
		c.mu.Lock()
		c.page = target
		c.mu.Unlock()
		c.render()
	}
	return nil
}

// JoinRoom enters a chat room and starts its live feed.
func (c *Controller) JoinRoom(ctx context.Context, roomID int64) error {
	if err := c.chat.Join(ctx, roomID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "TRANSIENT_ERROR" {
			c.notices.Error("Failed to join chat room")
		}
		return err
	}
	c.setView(ViewChatRoom)
	c.render()
	return nil
}

// LeaveRoom returns to the room list and stops the live feed.
func (c *Controller) LeaveRoom() {
	c.chat.Leave()
	c.setView(ViewChatList)
	c.render()
}

// SendMessage appends a chat message from the session user to the current
// room.
func (c *Controller) SendMessage(ctx context.Context, content string) (models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		c.notices.Error("Please enter a message")
		return models.ChatMessage{}, models.NewValidationError("Please enter a message")
	}
	roomID := c.store.CurrentRoom()
	if roomID == 0 {
		return models.ChatMessage{}, models.NewValidationError("Join a room before sending messages")
	}
	if err := c.sleep(ctx, c.cfg.DelayMessage); err != nil {
		c.notices.Error("Failed to send message")
		return models.ChatMessage{}, models.NewTransientError("Failed to send message", err)
	}

	now := c.now()
	msg := models.ChatMessage{
		ID:           now.UnixMilli(),
		RoomID:       roomID,
		Content:      content,
		AuthorHandle: c.store.Session().Handle,
		CreatedAt:    now,
	}
	c.store.AppendMessage(msg)
	c.render()
	return msg, nil
}

// SubmitReport accepts a content report. Reports are acknowledged only; the
// simulation has no moderation backend to forward them to.
func (c *Controller) SubmitReport(ctx context.Context, targetType string, targetID int64, reason, description string) (models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		c.notices.Error("Please select a reason for the report")
		return models.Report{}, models.NewValidationError("Please select a reason for the report")
	}
	if err := c.sleep(ctx, c.cfg.DelayReport); err != nil {
		c.notices.Error("Failed to submit report")
		return models.Report{}, models.NewTransientError("Failed to submit report", err)
	}
	report := models.Report{
		ID:          uuid.NewString(),
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      strings.TrimSpace(reason),
		Description: strings.TrimSpace(description),
		CreatedAt:   c.now(),
	}
	c.notices.Success("Report submitted successfully. Thank you for helping keep our community safe.")
	c.render()
	return report, nil
}

// Logout clears the session and returns to the welcome screen.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.sleep(ctx, c.cfg.DelayLogout); err != nil {
		c.notices.Error("Failed to logout")
		return models.NewTransientError("Failed to logout", err)
	}
	c.chat.Leave()
	c.store.Reset()
	c.mu.Lock()
	c.view = ViewWelcome
	c.page = 1
	c.mu.Unlock()
	c.notices.Success("You have left SafeSpace safely")
	c.render()
	return nil
}

// EmergencyExit resets all in-memory state immediately, with no simulated
// delay. Clearing persisted state and stopping the process are the caller's
// responsibility.
func (c *Controller) EmergencyExit() {
	c.chat.Leave()
	c.store.Reset()
	c.notices.DismissAll()
	c.mu.Lock()
	c.view = ViewWelcome
	c.page = 1
	c.mu.Unlock()
	c.render()
}

// DismissOverlays clears all active notices, the Escape action.
func (c *Controller) DismissOverlays() {
	c.notices.DismissAll()
}

// loadPosts runs one guarded post load. It reports whether the load actually
// ran; a load already in flight makes this a silent no-op.
func (c *Controller) loadPosts(ctx context.Context, page int, appendTo bool) (bool, error) {
	if !c.store.TryBeginLoad() {
		return false, nil
	}
	defer c.store.EndLoad()

	if err := c.sleep(ctx, c.cfg.DelayPosts); err != nil {
		c.notices.Error("Failed to load posts")
		return false, models.NewTransientError("Failed to load posts", err)
	}
	c.store.SetPosts(c.source.Posts(page), appendTo)
	observability.SimulatedLoads.WithLabelValues("posts").Inc()
	return true, nil
}

func (c *Controller) loadRooms(ctx context.Context) error {
	if !c.store.TryBeginLoad() {
		return nil
	}
	defer c.store.EndLoad()

	if err := c.sleep(ctx, c.cfg.DelayRooms); err != nil {
		c.notices.Error("Failed to load chat rooms")
		return models.NewTransientError("Failed to load chat rooms", err)
	}
	c.store.SetRooms(c.source.Rooms())
	observability.SimulatedLoads.WithLabelValues("rooms").Inc()
	return nil
}

func (c *Controller) loadResources(ctx context.Context) error {
	if !c.store.TryBeginLoad() {
		return nil
	}
	defer c.store.EndLoad()

	if err := c.sleep(ctx, c.cfg.DelayResources); err != nil {
		c.notices.Error("Failed to load resources")
		return models.NewTransientError("Failed to load resources", err)
	}
	c.store.SetResources(c.source.Resources())
	observability.SimulatedLoads.WithLabelValues("resources").Inc()
	return nil
}

func (c *Controller) setView(v View) {
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.View(), c.store.Snapshot())
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
