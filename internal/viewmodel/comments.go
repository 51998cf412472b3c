package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

// Comment is a top-level comment decorated for display: the author's
// resolved name and whether the comment belongs to the current user.
type Comment struct {
	Id          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	Created_at  time.Time `json:"created_at"`
	Author_name string    `json:"author_name"`
	Is_mine     bool      `json:"is_mine"`
}

// CommentThread loads a comic's top-level comments, newest first, and
// enriches them with author names resolved through one batched profile
// lookup over the distinct author-id set. The acting user's identity is
// captured once at Start, not re-derived per comment.
type CommentThread struct {
	store store.Store
	auth  auth.Service

	mu          sync.Mutex
	phase       Phase
	comicId     *uuid.UUID
	userId      *uuid.UUID
	emailPrefix *string
	comments    []Comment
	loadErr     error
	submitErr   error
	busy        bool
	closed      bool
	guard       guard
}

func NewCommentThread(store store.Store, auth auth.Service) *CommentThread {
	return &CommentThread{store: store, auth: auth}
}

// Start captures the acting identity and performs the first Refresh. A
// failed identity lookup degrades the thread instead of blocking it: the
// comments still load, decorated with fallback names and no "mine" flag.
func (t *CommentThread) Start(ctx context.Context, comicId uuid.UUID) error {
	user, err := t.auth.User(ctx)

	t.mu.Lock()

	if t.closed {
		t.mu.Unlock()
		return nil
	}

	t.comicId = &comicId

	if err == nil && user != nil {
		id := user.Id
		t.userId = &id

		if user.Email != nil {
			prefix := fallbackDisplayName(user.Email)
			t.emailPrefix = &prefix
		}
	}

	t.mu.Unlock()

	return t.Refresh(ctx)
}

func (t *CommentThread) Refresh(ctx context.Context) error {
	t.mu.Lock()

	if t.closed || t.comicId == nil {
		t.mu.Unlock()
		return nil
	}

	comicId := *t.comicId
	t.phase = PhaseLoading
	id := t.guard.next()
	t.mu.Unlock()

	rows, err := t.store.GetTopLevelComments(ctx, comicId)

	var names map[uuid.UUID]*string

	if err == nil && len(rows) > 0 {
		resolved, profileErr := t.store.GetProfiles(ctx, distinctAuthorIds(rows))

		if profileErr != nil {
			err = profileErr
		} else {
			names = make(map[uuid.UUID]*string, len(resolved))
			for _, profile := range resolved {
				names[profile.Id] = profile.Display_name
			}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || !t.guard.current(id) {
		return nil
	}

	if err != nil {
		t.loadErr = err
		t.phase = PhaseError
		return err
	}

	comments := make([]Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, t.decorate(row, names[row.User_id]))
	}

	t.comments = comments
	t.loadErr = nil
	t.phase = PhaseReady

	return nil
}

// distinctAuthorIds keeps first-seen order so the batched lookup is
// deterministic.
func distinctAuthorIds(rows []models.Comment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))

	for _, row := range rows {
		if _, ok := seen[row.User_id]; ok {
			continue
		}

		seen[row.User_id] = struct{}{}
		ids = append(ids, row.User_id)
	}

	return ids
}

// decorate is called with the mutex held.
func (t *CommentThread) decorate(row models.Comment, displayName *string) Comment {
	isMine := t.userId != nil && row.User_id == *t.userId

	name := ""
	if displayName != nil {
		name = strings.TrimSpace(*displayName)
	}

	if name == "" {
		if isMine && t.emailPrefix != nil && *t.emailPrefix != "" {
			name = *t.emailPrefix
		} else {
			name = defaultDisplayName
		}
	}

	return Comment{
		Id:          row.Id,
		Content:     row.Content,
		Created_at:  row.Created_at,
		Author_name: name,
		Is_mine:     isMine,
	}
}

// AddComment validates locally before touching the gateway: blank content,
// a missing comic id or a missing user are submit errors that never issue
// a call. On success the thread is fully refreshed so the new comment
// arrives through the same enrichment path as every other; the returned
// bool tells the input form whether to clear itself.
func (t *CommentThread) AddComment(ctx context.Context, content string) bool {
	trimmed := strings.TrimSpace(content)

	t.mu.Lock()

	if t.closed {
		t.mu.Unlock()
		return false
	}

	if t.busy {
		t.mu.Unlock()
		return false
	}

	if trimmed == "" {
		t.submitErr = ErrEmptyComment
		t.mu.Unlock()
		return false
	}

	if t.comicId == nil || t.userId == nil {
		t.submitErr = ErrSignInRequired
		t.mu.Unlock()
		return false
	}

	t.busy = true
	t.submitErr = nil
	comicId := *t.comicId
	userId := *t.userId
	t.mu.Unlock()

	err := t.store.InsertComment(ctx, comicId, userId, trimmed)

	if err != nil {
		t.mu.Lock()
		t.busy = false
		t.submitErr = err
		t.mu.Unlock()
		return false
	}

	refreshErr := t.Refresh(ctx)

	t.mu.Lock()
	t.busy = false
	t.mu.Unlock()

	return refreshErr == nil
}

func (t *CommentThread) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.phase
}

func (t *CommentThread) Comments() []Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.comments
}

func (t *CommentThread) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.busy
}

func (t *CommentThread) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.loadErr
}

func (t *CommentThread) SubmitErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.submitErr
}

func (t *CommentThread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
}
