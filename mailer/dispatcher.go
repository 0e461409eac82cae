package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Failure describes a background send that did not succeed.
type Failure struct {
	Kind    string
	To      []string
	Subject string
	Err     error
	At      time.Time
}

// Dispatcher sends mail in detached goroutines so request handlers never wait
// on SMTP. Failures are logged and published on Failures(); the channel drops
// events when nobody drains it.
type Dispatcher struct {
	mailer   Mailer
	timeout  time.Duration
	failures chan Failure
	log      *logrus.Entry
	wg       sync.WaitGroup
}

func NewDispatcher(m Mailer, timeout time.Duration, log *logrus.Entry) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		mailer:   m,
		timeout:  timeout,
		failures: make(chan Failure, 64),
		log:      log,
	}
}

// Dispatch queues msg for background delivery. kind labels the log line.
func (d *Dispatcher) Dispatch(kind string, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.mailer.Send(ctx, msg); err != nil {
			d.log.WithFields(logrus.Fields{
				"kind":    kind,
				"to":      msg.To,
				"subject": msg.Subject,
			}).WithError(err).Error("background email failed")

			select {
			case d.failures <- Failure{Kind: kind, To: msg.To, Subject: msg.Subject, Err: err, At: time.Now()}:
			default:
			}
			return
		}
		d.log.WithFields(logrus.Fields{"kind": kind, "to": msg.To}).Debug("email sent")
	}()
}

// Failures exposes failed sends.
func (d *Dispatcher) Failures() <-chan Failure {
	return d.failures
}

// Wait blocks until every dispatched send has finished or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
