package services

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storeadmin-backend/mailer"
	"storeadmin-backend/models"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type queuedMail struct {
	kind string
	msg  mailer.Message
}

type fakeQueue struct {
	mu   sync.Mutex
	sent []queuedMail
}

func (q *fakeQueue) Dispatch(kind string, msg mailer.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, queuedMail{kind: kind, msg: msg})
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.sent)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls map[string][]*models.Notification
}

func (f *fakeNotifier) NotifyUser(userID string, n *models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string][]*models.Notification{}
	}
	f.calls[userID] = append(f.calls[userID], n)
}

// nextCommand pops the next recorded command and checks its name.
func nextCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt, "expected %s command", name)
	require.Equal(mt, name, evt.CommandName)
	return evt.Command
}

func docAsMap(mt *mtest.T, raw bson.Raw) bson.M {
	mt.Helper()
	var m bson.M
	require.NoError(mt, bson.Unmarshal(raw, &m))
	return m
}
