package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aq2208/gstore-api/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumeChannel is the part of *amqp.Channel the router needs.
type ConsumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Router manages multiple consumers (one per registered queue) on a single AMQP channel.
type Router struct {
	ch            ConsumeChannel
	prefetch      int
	callTimeout   time.Duration
	requeueOnErr  bool
	log           *slog.Logger
	registrations []registration
	wg            sync.WaitGroup
}

type registration struct {
	queueName   string
	handler     Handler
	consumerTag string
}

// --- Options ---

type RouterOption func(*Router)

func WithPrefetch(n int) RouterOption          { return func(r *Router) { r.prefetch = n } }
func WithTimeout(d time.Duration) RouterOption { return func(r *Router) { r.callTimeout = d } }
func WithRequeue(b bool) RouterOption          { return func(r *Router) { r.requeueOnErr = b } }
func WithLogger(l *slog.Logger) RouterOption   { return func(r *Router) { r.log = l } }

// NewRouter constructs a Router. Defaults: prefetch=10, timeout=10s, requeueOnErr=true.
func NewRouter(ch ConsumeChannel, opts ...RouterOption) *Router {
	r := &Router{
		ch:           ch,
		prefetch:     10,
		callTimeout:  10 * time.Second,
		requeueOnErr: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logging.New("rmq-router")
	}
	return r
}

// Register associates a queue with a handler. Call multiple times for multiple queues.
func (r *Router) Register(queueName string, h Handler) {
	r.registrations = append(r.registrations, registration{
		queueName:   queueName,
		handler:     h,
		consumerTag: "c_" + queueName,
	})
}

// Start begins consuming; non-blocking (one goroutine per queue). Consumers
// stop when ctx is done or the broker closes the delivery channel.
func (r *Router) Start(ctx context.Context) error {
	if err := r.ch.Qos(r.prefetch, 0, false); err != nil {
		return err
	}

	for _, reg := range r.registrations {
		deliveries, err := r.ch.Consume(
			reg.queueName,
			reg.consumerTag,
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}

		r.wg.Add(1)
		go func(reg registration, msgs <-chan amqp.Delivery) {
			defer r.wg.Done()
			r.consume(ctx, reg, msgs)
		}(reg, deliveries)
	}

	return nil
}

// Wait blocks until every consumer goroutine has returned.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) consume(ctx context.Context, reg registration, msgs <-chan amqp.Delivery) {
	l := r.log.With("queue", reg.queueName, "tag", reg.consumerTag)
	for {
		select {
		case <-ctx.Done():
			l.Info("consumer stopped", "reason", ctx.Err())
			return
		case d, ok := <-msgs:
			if !ok {
				l.Info("consumer stopped", "reason", "channel closed")
				return
			}
			r.deliver(ctx, l, reg.handler, d)
		}
	}
}

func (r *Router) deliver(ctx context.Context, l *slog.Logger, h Handler, d amqp.Delivery) {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	err := h.Handle(callCtx, d)
	cancel()

	if err != nil {
		requeue := r.requeueOnErr && !errors.Is(err, ErrPoison)
		l.Warn("handler error", "rk", d.RoutingKey, "err", err, "requeue", requeue)
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}
