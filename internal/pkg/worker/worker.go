package worker

import (
	"time"

	"scholarshub/internal/pkg/push"
	"scholarshub/pkg/logger"

	"go.uber.org/zap"
)

// PushTask is one pending mobile notification delivery.
type PushTask struct {
	RecipientID string
	Title       string
	Body        string
	Ext         map[string]string
	Retry       int
}

// PushPool delivers notification pushes off the request path. The toggle
// that created a notification has already returned by the time its push is
// attempted; failures are retried a few times and then dropped with a log.
type PushPool struct {
	TaskQueue  chan PushTask
	RetryQueue chan PushTask
	Pusher     push.PushService
	WorkerNum  int
	MaxRetry   int
}

func NewPushPool(pusher push.PushService, workerNum, bufferSize int) *PushPool {
	return &PushPool{
		TaskQueue:  make(chan PushTask, bufferSize),
		RetryQueue: make(chan PushTask, bufferSize/2),
		Pusher:     pusher,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *PushPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
}

func (p *PushPool) worker(id int) {
	for task := range p.TaskQueue {
		err := p.Pusher.PushToAccount(task.RecipientID, task.Title, task.Body, task.Ext)
		if err == nil {
			continue
		}

		if task.Retry < p.MaxRetry {
			task.Retry++
			select {
			case p.RetryQueue <- task:
			default:
				p.logDropped(task, err)
			}
		} else {
			p.logDropped(task, err)
		}
	}
}

func (p *PushPool) retryWorker() {
	for task := range p.RetryQueue {
		// Backoff grows with the attempt count.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			p.logDropped(task, nil)
		}
	}
}

// Enqueue never blocks a request handler; when the queue is full the push is
// dropped, not the notification row.
func (p *PushPool) Enqueue(task PushTask) {
	select {
	case p.TaskQueue <- task:
	default:
		p.logDropped(task, nil)
	}
}

func (p *PushPool) logDropped(task PushTask, err error) {
	if logger.Log != nil {
		logger.Log.Warn("push delivery dropped",
			zap.String("recipient", task.RecipientID),
			zap.Int("retry", task.Retry),
			zap.Error(err),
		)
	}
}
