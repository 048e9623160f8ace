package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/phonemizer/internal/config"
)

type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	retention time.Duration
	timeout   time.Duration
}

// RedisOpt converts the shared Redis settings into asynq connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig, phonemizeTimeout time.Duration) *Client {
	opt := RedisOpt(redisCfg)
	return &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		retention: queueCfg.Retention,
		timeout:   phonemizeTimeout,
	}
}

func (c *Client) Close() error {
	return errors.Join(c.client.Close(), c.inspector.Close())
}

// EnqueuePhonemize schedules text for the worker and returns the job id.
// Jobs are never retried; the result is kept for the retention window.
func (c *Client) EnqueuePhonemize(ctx context.Context, text string) (string, error) {
	data, err := json.Marshal(PhonemizePayload{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	id := uuid.NewString()
	opts := []asynq.Option{
		asynq.TaskID(id),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(0),
		asynq.Retention(c.retention),
	}
	if c.timeout > 0 {
		opts = append(opts, asynq.Timeout(c.timeout))
	}

	if _, err := c.client.EnqueueContext(ctx, asynq.NewTask(TypePhonemize, data), opts...); err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TypePhonemize, err)
	}
	return id, nil
}

// Job looks up a previously enqueued job.
func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrJobNotFound
	}

	info, err := c.inspector.GetTaskInfo(QueueDefault, id)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return JobFromTaskInfo(info)
}

// JobFromTaskInfo translates asynq task state into a Job.
func JobFromTaskInfo(info *asynq.TaskInfo) (*Job, error) {
	job := &Job{ID: info.ID}

	switch info.State {
	case asynq.TaskStateActive:
		job.Status = StatusActive
	case asynq.TaskStateCompleted:
		var res PhonemizeResult
		if err := json.Unmarshal(info.Result, &res); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", info.ID, err)
		}
		job.Status = StatusCompleted
		job.PhonemizedText = res.PhonemizedText
	case asynq.TaskStateArchived:
		job.Status = StatusFailed
		job.Detail = info.LastErr
	default:
		job.Status = StatusPending
	}

	return job, nil
}
