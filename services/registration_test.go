package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin-backend/models"
	"storeadmin-backend/otpstore"
)

type fakeDirectory struct {
	emails  map[string]bool
	created []models.CreateUserRequest
}

func (d *fakeDirectory) EmailExists(_ context.Context, email string) (bool, error) {
	return d.emails[email], nil
}

func (d *fakeDirectory) Create(_ context.Context, req models.CreateUserRequest) (*models.User, error) {
	d.created = append(d.created, req)
	d.emails[req.Email] = true
	return &models.User{ID: primitive.NewObjectID(), Name: req.Name, Email: req.Email, Role: req.Role, IsActive: true}, nil
}

func newRegistration(t *testing.T, store otpstore.Store) (*RegistrationService, *fakeDirectory, *fakeQueue) {
	t.Helper()
	dir := &fakeDirectory{emails: map[string]bool{}}
	queue := &fakeQueue{}
	svc := NewRegistrationService(store, dir, queue, 10*time.Minute, "Test Store", quietLog())
	return svc, dir, queue
}

// issuedCode reads the code back out of the queued email.
func issuedCode(t *testing.T, q *fakeQueue) string {
	t.Helper()
	require.NotZero(t, q.count())
	html := q.sent[len(q.sent)-1].msg.HTML
	idx := strings.Index(html, "letter-spacing:6px\">")
	require.NotEqual(t, -1, idx)
	start := idx + len("letter-spacing:6px\">")
	return html[start : start+6]
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	mem := otpstore.NewMemoryStore(0)
	defer mem.Close()
	svc, dir, queue := newRegistration(t, mem)

	require.NoError(t, svc.RequestOTP(ctx, "a@b.com"))
	assert.Equal(t, "register_otp", queue.sent[0].kind)
	assert.Equal(t, []string{"a@b.com"}, queue.sent[0].msg.To)
	code := issuedCode(t, queue)

	ok, err := svc.VerifyOTP(ctx, "a@b.com", wrongCode(code))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyOTP(ctx, "A@B.com", code)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: wrongCode(code)})
	assert.ErrorIs(t, err, ErrInvalid)

	u, err := svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: code})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, models.RoleUser, dir.created[0].Role)

	// consumed
	_, err = svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: code})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Zero(t, mem.Len())
}

func TestRegistrationRejectsExpiredCode(t *testing.T) {
	ctx := context.Background()
	mem := otpstore.NewMemoryStore(0)
	defer mem.Close()
	svc, _, queue := newRegistration(t, mem)

	require.NoError(t, svc.RequestOTP(ctx, "a@b.com"))
	code := issuedCode(t, queue)
	ok, err := svc.VerifyOTP(ctx, "a@b.com", code)
	require.NoError(t, err)
	require.True(t, ok)

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	_, err = svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: code})
	assert.ErrorIs(t, err, ErrInvalid)

	ok, err = svc.VerifyOTP(ctx, "a@b.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistrationRequiresVerification(t *testing.T) {
	ctx := context.Background()
	mem := otpstore.NewMemoryStore(0)
	defer mem.Close()
	svc, _, queue := newRegistration(t, mem)

	require.NoError(t, svc.RequestOTP(ctx, "a@b.com"))
	code := issuedCode(t, queue)

	_, err := svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: code})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRegistrationUnknownEmail(t *testing.T) {
	svc, _, _ := newRegistration(t, otpstore.NewMemoryStore(0))
	ok, err := svc.VerifyOTP(context.Background(), "nobody@b.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistrationRejectsRegisteredEmail(t *testing.T) {
	svc, dir, queue := newRegistration(t, otpstore.NewMemoryStore(0))
	dir.emails["taken@b.com"] = true

	err := svc.RequestOTP(context.Background(), "Taken@b.com")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, queue.count())
}

func TestRegistrationWithRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := otpstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "register")
	svc, _, queue := newRegistration(t, store)

	require.NoError(t, svc.RequestOTP(ctx, "a@b.com"))
	assert.True(t, mr.Exists("otp:register:a@b.com"))
	code := issuedCode(t, queue)

	ok, err := svc.VerifyOTP(ctx, "a@b.com", code)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Complete(ctx, models.RegisterRequest{Name: "A", Email: "a@b.com", Password: "secret1", OTP: code})
	require.NoError(t, err)
	assert.False(t, mr.Exists("otp:register:a@b.com"))
}

// stuckStore cannot delete entries.
type stuckStore struct {
	otpstore.Store
}

func (stuckStore) Delete(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestRegistrationLogsFailedExpiryCleanup(t *testing.T) {
	ctx := context.Background()
	mem := otpstore.NewMemoryStore(0)
	defer mem.Close()
	logger, hook := logtest.NewNullLogger()
	queue := &fakeQueue{}
	svc := NewRegistrationService(stuckStore{mem}, &fakeDirectory{emails: map[string]bool{}}, queue, 10*time.Minute, "Test Store", logrus.NewEntry(logger))

	require.NoError(t, svc.RequestOTP(ctx, "a@b.com"))
	code := issuedCode(t, queue)
	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	ok, err := svc.VerifyOTP(ctx, "a@b.com", code)
	require.NoError(t, err)
	assert.False(t, ok)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "a@b.com", entry.Data["email"])
	assert.Error(t, entry.Data[logrus.ErrorKey].(error))
}
