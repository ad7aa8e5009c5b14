// Package events publishes task changes to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"TodoWebService/models"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

const (
	queueSize    = 256
	writeTimeout = 2 * time.Second
)

var (
	// ErrQueueFull is returned by Publish when the writer has fallen behind.
	ErrQueueFull = errors.New("event queue is full")
	ErrClosed    = errors.New("publisher is closed")
)

// Event describes a change applied to a task.
type Event struct {
	Action string      `json:"action"`
	Task   models.Task `json:"task"`
	At     time.Time   `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher hands events to a single worker goroutine through a buffered
// channel, so Publish never waits for the broker. The worker writes each
// message under writeTimeout and logs failures.
type KafkaPublisher struct {
	writer  messageWriter
	log     logrus.FieldLogger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

func NewKafkaPublisher(broker, topic string, log logrus.FieldLogger) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, log, writeTimeout)
}

func newKafkaPublisher(w messageWriter, log logrus.FieldLogger, timeout time.Duration) *KafkaPublisher {
	p := &KafkaPublisher{
		writer:  w,
		log:     log,
		timeout: timeout,
		queue:   make(chan kafka.Message, queueSize),
		done:    make(chan struct{}),
	}
	go p.worker()
	return p
}

// Publish queues the event as JSON, keyed by task id so that all events of
// one task land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Task.Id, 10)),
		Value: value,
		Time:  event.At,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *KafkaPublisher) worker() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.log.WithFields(logrus.Fields{
				"task operation": "publish event",
				"task id":        string(msg.Key),
			}).Error(err.Error())
		}
		cancel()
	}
}

// Close stops accepting events, waits for the queued ones to be written and
// closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
