package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(nilWriter{})
	return logrus.NewEntry(l)
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestDispatcherDelivers(t *testing.T) {
	rec := &recordingMailer{}
	d := NewDispatcher(rec, time.Second, quietLog())

	for i := 0; i < 5; i++ {
		d.Dispatch("otp", Message{To: []string{"a@b.com"}, Subject: "code"})
	}
	require.NoError(t, d.Wait(context.Background()))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.sent, 5)
}

func TestDispatcherReportsFailures(t *testing.T) {
	rec := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(rec, time.Second, quietLog())

	d.Dispatch("promotion", Message{To: []string{"a@b.com"}, Subject: "sale"})
	require.NoError(t, d.Wait(context.Background()))

	select {
	case f := <-d.Failures():
		assert.Equal(t, "promotion", f.Kind)
		assert.Equal(t, []string{"a@b.com"}, f.To)
		assert.EqualError(t, f.Err, "smtp down")
	case <-time.After(time.Second):
		t.Fatal("expected a failure event")
	}
}

func TestRenderTemplates(t *testing.T) {
	html, err := Render("otp", OTPData{StoreName: "Shop", Code: "042042", Minutes: 10})
	require.NoError(t, err)
	assert.Contains(t, html, "042042")
	assert.Contains(t, html, "10 minutes")

	html, err = Render("promotion", PromotionData{StoreName: "Shop", Code: "SALE10", Discount: "10%", MinOrderValue: 100, ExpiryDate: "2099-01-01"})
	require.NoError(t, err)
	assert.Contains(t, html, "SALE10")
	assert.Contains(t, html, "on orders over 100")
}
