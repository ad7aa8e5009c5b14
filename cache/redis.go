// Package cache keeps recently read tasks in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"TodoWebService/models"

	"github.com/redis/go-redis/v9"
)

// TaskCache is a read-through cache for single tasks and the task list.
// A miss is reported as a nil result with a nil error.
type TaskCache interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	SetTask(ctx context.Context, task models.Task, ttl time.Duration) error

	GetTaskList(ctx context.Context) ([]models.Task, error)
	SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error

	DeleteTask(ctx context.Context, id int64) error
	DeleteTaskList(ctx context.Context) error
}

const taskListKey = "tasks:list"

func taskKey(id int64) string {
	return "task:" + strconv.FormatInt(id, 10)
}

type RedisTaskCache struct {
	rdb *redis.Client
}

func NewRedisTaskCache(rdb *redis.Client) *RedisTaskCache {
	return &RedisTaskCache{rdb: rdb}
}

// Dial connects to Redis at addr and verifies the connection.
func Dial(ctx context.Context, addr string) (*RedisTaskCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return NewRedisTaskCache(rdb), nil
}

func (c *RedisTaskCache) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	val, err := c.rdb.Get(ctx, taskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(val, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *RedisTaskCache) SetTask(ctx context.Context, task models.Task, ttl time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskKey(task.Id), data, ttl).Err()
}

func (c *RedisTaskCache) GetTaskList(ctx context.Context) ([]models.Task, error) {
	val, err := c.rdb.Get(ctx, taskListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if err := json.Unmarshal(val, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *RedisTaskCache) SetTaskList(ctx context.Context, tasks []models.Task, ttl time.Duration) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskListKey, data, ttl).Err()
}

func (c *RedisTaskCache) DeleteTask(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, taskKey(id)).Err()
}

func (c *RedisTaskCache) DeleteTaskList(ctx context.Context) error {
	return c.rdb.Del(ctx, taskListKey).Err()
}

func (c *RedisTaskCache) Close() error {
	return c.rdb.Close()
}
