package ws

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

type timestampArgs struct {
	Timestamp *float64 `mapstructure:"timestamp"`
}

func handlePing(_ context.Context, cmd *Message) (*Message, error) {
	var args timestampArgs
	_ = cmd.Decode(&args)

	data := map[string]any{"serverTimestamp": time.Now().UnixMilli()}
	if args.Timestamp != nil {
		data["clientTimestamp"] = *args.Timestamp
	}
	return cmd.Reply(MsgPong, data), nil
}

func handleTestEvent(ctx context.Context, cmd *Message) (*Message, error) {
	var args timestampArgs
	if err := cmd.Decode(&args); err != nil || args.Timestamp == nil {
		return cmd.Reply(MsgTestEventResponse, map[string]any{
			"status":            "error",
			"error":             "invalid timestamp",
			"receivedTimestamp": cmd.Data["timestamp"],
		}), nil
	}

	return cmd.Reply(MsgTestEventResponse, map[string]any{
		"status":          "success",
		"serverTimestamp": time.Now().UnixMilli(),
		"clientTimestamp": *args.Timestamp,
		"serverInfo":      serverInfo(ctx),
	}), nil
}

func serverInfo(ctx context.Context) map[string]any {
	info := map[string]any{
		"go_version":  runtime.Version(),
		"server_time": time.Now().Format(time.RFC3339),
	}
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return info
	}
	info["hostname"] = hi.Hostname
	info["os_name"] = hi.OS
	info["os_version"] = hi.KernelVersion
	info["platform"] = hi.Platform
	info["uptime_seconds"] = hi.Uptime
	return info
}
