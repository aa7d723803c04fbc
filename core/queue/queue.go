package queue

import (
	"encoding/json"

	"metra-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TaskNotificationDeliver = "notification:deliver"
)

// DeliverNotificationPayload is the payload of a notification:deliver task.
type DeliverNotificationPayload struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func redisOpt(config QueueConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	}
}

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(config QueueConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(config))}
}

// EnqueueNotificationDeliver schedules delivery of a stored notification.
func (c *Client) EnqueueNotificationDeliver(payload DeliverNotificationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskNotificationDeliver, data, asynq.MaxRetry(3))
	info, err := c.client.Enqueue(task)
	if err != nil {
		logger.Error("Queue:EnqueueNotificationDeliver:Error:", err)
		return err
	}
	logger.Debug("Queue:EnqueueNotificationDeliver:Enqueued", "task_id", info.ID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NewServer builds the asynq worker server; handlers are registered by the
// modules that own the tasks.
func NewServer(config QueueConfig) *asynq.Server {
	return asynq.NewServer(redisOpt(config), asynq.Config{
		Concurrency: 5,
	})
}
