package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
)

var (
	errTableMismatch = errors.New("table name not match")
	errEmptyData     = errors.New("data is empty")
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// BatchDoneFunc 一批消息全部处理完成后回调
type BatchDoneFunc func(ctx context.Context, n int)

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc, done BatchDoneFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic, done)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic, done)
				// 清空缓冲区 & 重置定时器
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic, done)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，失败的消息指数退避重试
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc, done BatchDoneFunc) {
	var wg sync.WaitGroup
	ctx := session.Context()

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			retryInterval := 100 * time.Millisecond

			for {
				err := logic(ctx, m)
				if err == nil {
					return
				}
				if isPermanent(err) {
					log.WarnContext(ctx, "skip message", "topic", m.Topic, "offset", m.Offset, "err", err)
					return
				}

				log.ErrorContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "err", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}

				retryInterval *= 2
				if retryInterval > 5*time.Second {
					retryInterval = 5 * time.Second
				}
			}
		}(msg)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return
	}

	if done != nil {
		done(ctx, len(messages))
	}

	lastMsg := messages[len(messages)-1]
	session.MarkMessage(lastMsg, "")
	session.Commit()
}

// isPermanent 解析失败或与本消费者无关的消息不再重试
func isPermanent(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.Is(err, errTableMismatch) || errors.Is(err, errEmptyData) || errors.As(err, &syntaxErr)
}

// ToCanalMessage 将kafka消息转换为canal消息结构体
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, errors.Wrap(err, "unmarshal canal message")
	}

	if canalMsg.Table != tableName {
		return nil, errTableMismatch
	}

	if len(canalMsg.Data) == 0 {
		return nil, errEmptyData
	}

	return &canalMsg, nil
}
