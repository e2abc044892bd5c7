package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlowThreshold 超过该耗时的命令记为慢命令
const RedisSlowThreshold = 100 * time.Millisecond

// RedisLoggerHook 记录 redis 连接与命令的异常和慢调用
type RedisLoggerHook struct {
	// 以这些前缀开头的 key 不输出参数，如吊销的令牌签名
	protectedPrefixes []string
}

func NewRedisLogger(protectedPrefixes ...string) *RedisLoggerHook {
	return &RedisLoggerHook{protectedPrefixes: protectedPrefixes}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil && (errors.Is(err, redis.Nil) || isClientSetInfo(cmd, err)) {
			return err
		}
		if err == nil && elapsed <= RedisSlowThreshold {
			return nil
		}

		fields := []any{
			log.String("command", cmd.Name()),
			log.String("args", s.describeArgs(cmd)),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "Redis Slow", fields...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}

func (s *RedisLoggerHook) describeArgs(cmd redis.Cmder) string {
	name := cmd.Name()
	if name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}
	args := cmd.Args()
	if len(args) > 1 {
		if key, ok := args[1].(string); ok {
			for _, prefix := range s.protectedPrefixes {
				if strings.HasPrefix(key, prefix) {
					return "[PROTECTED]"
				}
			}
		}
	}
	return fmt.Sprint(args)
}

func isClientSetInfo(cmd redis.Cmder, err error) bool {
	return cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo")
}
