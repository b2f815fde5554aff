package application

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/infrastructure/memory"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
	"github.com/oksasatya/go-todo-auth/pkg/mailer"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// attempts are recorded even when delivery fails
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) last(t *testing.T) mailer.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail sent")
	return m.sent[len(m.sent)-1]
}

var resetLinkRe = regexp.MustCompile(regexp.QuoteMeta(ResetLinkPath) + `([0-9a-f]{64})`)

// resetToken pulls the plain token out of the emailed link.
func resetToken(t *testing.T, msg mailer.Message) string {
	t.Helper()
	m := resetLinkRe.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2, "reset link not found in %q", msg.Text)
	return m[1]
}

type fixture struct {
	svc   *Service
	todos *TodoService
	users *memory.UserRepository
	mail  *recordingMailer
	clock *clock
}

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users, todos := memory.NewStore()
	c := &clock{t: t0}

	hasher, err := helpers.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour)
	jwt.Now = c.Now
	reset := helpers.NewResetTokenGenerator()
	reset.Now = c.Now
	mail := &recordingMailer{}

	svc := NewService(users, hasher, jwt, reset, mail, helpers.NewDiscardLogger())
	svc.Now = c.Now
	svc.AppName = "todo-api"
	svc.SenderName = "Kemer Code"
	svc.PublicBaseURL = "https://todo.example.com"

	return &fixture{
		svc:   svc,
		todos: NewTodoService(todos, helpers.NewDiscardLogger()),
		users: users,
		mail:  mail,
		clock: c,
	}
}

func (f *fixture) register(t *testing.T, userName, email, phone string) *entity.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		FullName:    "User " + userName,
		UserName:    userName,
		Email:       email,
		PhoneNumber: phone,
		Password:    "Passw0rd!",
	})
	require.NoError(t, err)
	return u
}

var errSMTP = errors.New("smtp unavailable")
