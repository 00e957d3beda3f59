package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"tavola/internal/shared/config"
	"tavola/pkg/logger"
)

// Consumer drains the notification topic and hands events to the mailer
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	emailService  EmailService
	topics        []string
	workers       int
	maxRetries    int
	retryBackoff  time.Duration
	logger        *logger.Logger
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaConsumer(cfg *config.KafkaConfig, emailService EmailService) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.MaxProcessingTime = 5 * time.Minute
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	workers := cfg.ConsumerWorkers
	if workers <= 0 {
		workers = 1
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		emailService:  emailService,
		topics:        []string{cfg.NotificationTopic},
		workers:       workers,
		maxRetries:    3,
		retryBackoff:  time.Second,
		logger:        logger.GetDefault(),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.Error("consumer group error", "error", err)
		}
	}()

	c.logger.Info("starting notification consumer workers", "workers", c.workers, "topics", c.topics)
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{
		emailService: c.emailService,
		workerID:     workerID,
		maxRetries:   c.maxRetries,
		retryBackoff: c.retryBackoff,
		logger:       c.logger,
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("notification worker shutting down", "worker", workerID)
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.logger.Error("error consuming notification messages", "worker", workerID, "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.logger.Info("notification consumer stopped")
	return nil
}

type consumerGroupHandler struct {
	emailService EmailService
	workerID     int
	maxRetries   int
	retryBackoff time.Duration
	logger       *logger.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				h.logger.Error("failed to process notification message",
					"worker", h.workerID,
					"topic", message.Topic,
					"offset", message.Offset,
					"error", err,
				)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event EmailEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	return h.sendWithRetry(ctx, &event)
}

func (h *consumerGroupHandler) sendWithRetry(ctx context.Context, event *EmailEvent) error {
	backoff := h.retryBackoff

	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		err := h.emailService.Send(ctx, event)
		if err == nil {
			h.logger.Debug("email notification sent",
				"worker", h.workerID,
				"recipient", event.RecipientEmail,
				"type", event.Type,
			)
			return nil
		}

		if attempt == h.maxRetries {
			return err
		}

		// Exponential backoff between attempts
		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
