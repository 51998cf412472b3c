package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

type User struct {
	Id    uuid.UUID
	Email *string
}

type Session struct {
	Token string
	User  User
}

// Service owns the client process's single authentication session. The
// cached session is single-writer: only the service replaces it, on
// sign-in, sign-up, sign-out and resume. Subscribers receive the full
// replacement session (or nil) on every change.
type Service interface {
	Session(ctx context.Context) (*Session, error)
	User(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, email string, password string) error
	SignUp(ctx context.Context, email string, password string) error
	SignOut(ctx context.Context) error
	Subscribe() (<-chan *Session, func())
}

type PostgresAuth struct {
	db     *sql.DB
	secret string

	resumeToken string
	resumeOnce  sync.Once
	resumeErr   error

	mu      sync.RWMutex
	session *Session

	subMu       sync.Mutex
	subscribers map[chan *Session]struct{}
}

// NewPostgresAuth builds the auth service. resumeToken may be a token kept
// from a previous run; it is validated lazily on the first Session call so
// a session can already exist at app start.
func NewPostgresAuth(db *sql.DB, secret string, resumeToken string) *PostgresAuth {
	return &PostgresAuth{
		db:          db,
		secret:      secret,
		resumeToken: resumeToken,
		subscribers: make(map[chan *Session]struct{}),
	}
}

func (a *PostgresAuth) Session(ctx context.Context) (*Session, error) {
	a.resumeOnce.Do(func() {
		a.resumeErr = a.resume(ctx)
	})

	if a.resumeErr != nil {
		return nil, a.resumeErr
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.session, nil
}

func (a *PostgresAuth) User(ctx context.Context) (*User, error) {
	session, err := a.Session(ctx)

	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, nil
	}

	user := session.User
	return &user, nil
}

func (a *PostgresAuth) resume(ctx context.Context) error {
	if a.resumeToken == "" {
		return nil
	}

	claims, err := ParseToken(a.resumeToken, a.secret)

	if err != nil {
		return fmt.Errorf("error resuming session: %v", err)
	}

	id, err := uuid.Parse(claims.Id)

	if err != nil {
		return fmt.Errorf("error parsing session subject: %v", err)
	}

	var email string

	query := `
			SELECT email FROM accounts WHERE id = $1;
	`

	if err := a.db.QueryRowContext(ctx, query, id).Scan(&email); err != nil {
		return fmt.Errorf("error loading account for session: %v", err)
	}

	a.replace(&Session{Token: a.resumeToken, User: User{Id: id, Email: &email}})

	return nil
}

func (a *PostgresAuth) SignIn(ctx context.Context, email string, password string) error {
	var id uuid.UUID
	var hash string

	query := `
			SELECT id, password FROM accounts WHERE email = $1;
	`

	if err := a.db.QueryRowContext(ctx, query, email).Scan(&id, &hash); err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidCredentials
		}

		return fmt.Errorf("error retrieving account: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	token, err := CreateToken(id.String(), a.secret)

	if err != nil {
		return err
	}

	a.replace(&Session{Token: token, User: User{Id: id, Email: &email}})

	return nil
}

func (a *PostgresAuth) SignUp(ctx context.Context, email string, password string) error {
	var exists bool

	if err := a.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return fmt.Errorf("error checking account: %v", err)
	}

	if exists {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return fmt.Errorf("error hashing password: %v", err)
	}

	var id uuid.UUID

	query := `
			INSERT INTO accounts(email, password) VALUES ($1, $2) RETURNING id;
	`

	if err := a.db.QueryRowContext(ctx, query, email, string(hash)).Scan(&id); err != nil {
		return fmt.Errorf("error creating account: %v", err)
	}

	token, err := CreateToken(id.String(), a.secret)

	if err != nil {
		return err
	}

	a.replace(&Session{Token: token, User: User{Id: id, Email: &email}})

	return nil
}

func (a *PostgresAuth) SignOut(ctx context.Context) error {
	a.replace(nil)
	return nil
}

func (a *PostgresAuth) Subscribe() (<-chan *Session, func()) {
	ch := make(chan *Session, 8)

	a.subMu.Lock()
	a.subscribers[ch] = struct{}{}
	a.subMu.Unlock()

	cancel := func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()

		if _, ok := a.subscribers[ch]; ok {
			delete(a.subscribers, ch)
			close(ch)
		}
	}

	return ch, cancel
}

func (a *PostgresAuth) replace(session *Session) {
	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.subMu.Lock()
	defer a.subMu.Unlock()

	for ch := range a.subscribers {
		select {
		case ch <- session:
		default:
		}
	}
}
