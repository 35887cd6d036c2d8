package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/ui/style"
	"github.com/cto-ai/clif/internal/usage"
)

func TestReport(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		err      error
		wantCode int
		wantOut  string
	}{
		{
			name:     "success",
			ctx:      context.Background(),
			wantCode: 0,
		},
		{
			name:     "usage error",
			ctx:      context.Background(),
			err:      usage.MissingArgument("path"),
			wantCode: 2,
			wantOut:  "clif: missing required argument 'path'\n",
		},
		{
			name:     "exit requested is silent",
			ctx:      context.Background(),
			err:      usage.Exit(4),
			wantCode: 4,
		},
		{
			name:     "halted exit from a run",
			ctx:      context.Background(),
			err:      intent.Halt(usage.Exit(5)),
			wantCode: 5,
		},
		{
			name:     "exit zero",
			ctx:      context.Background(),
			err:      usage.Exit(0),
			wantCode: 0,
		},
		{
			name:     "failure with fields",
			ctx:      context.Background(),
			err:      intent.Fail(map[string]any{"ns": "net", "port": 80, "host": "x"}, "refused"),
			wantCode: 1,
			wantOut:  "clif: net refused\n  host: x\n  port: 80\n",
		},
		{
			name:     "plain error",
			ctx:      context.Background(),
			err:      errors.New("boom"),
			wantCode: 1,
			wantOut:  "clif: failure boom\n",
		},
		{
			name:     "interrupted",
			ctx:      cancelled,
			err:      context.Canceled,
			wantCode: 130,
			wantOut:  "clif: interrupted\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.Equal(t, tt.wantCode, report(tt.ctx, &out, style.NewStyler(false, ""), tt.err))
			require.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestReport_StylesFailureNamespace(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLIF_NO_COLOR", "")

	var out bytes.Buffer
	code := report(context.Background(), &out, style.NewStyler(true, "default-dark"), intent.Fail(map[string]any{"ns": "net"}, "refused"))
	require.Equal(t, 1, code)
	require.Contains(t, out.String(), "\x1b[")
	require.True(t, strings.HasSuffix(out.String(), " refused\n"))
}

func TestWatchInterrupt(t *testing.T) {
	tests := []struct {
		name     string
		cancel   bool
		finish   bool
		wantExit bool
	}{
		{name: "run finishes without signal", finish: true},
		{name: "run unwinds within grace", cancel: true, finish: true},
		{name: "blocked run is terminated", cancel: true, wantExit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			done := make(chan struct{})
			stopped := make(chan struct{}, 1)
			exited := make(chan int, 1)
			grace := 50 * time.Millisecond
			if tt.finish {
				grace = time.Minute
			}

			returned := make(chan struct{})
			go func() {
				watchInterrupt(ctx, func() { stopped <- struct{}{} }, done, grace, func(code int) { exited <- code })
				close(returned)
			}()

			if tt.cancel {
				cancel()
				select {
				case <-stopped:
				case <-time.After(2 * time.Second):
					t.Fatal("signal handling was not released")
				}
			}
			if tt.finish {
				close(done)
			}

			select {
			case <-returned:
			case <-time.After(2 * time.Second):
				t.Fatal("watcher did not return")
			}
			if tt.wantExit {
				require.Equal(t, 130, <-exited)
			} else {
				require.Empty(t, exited)
			}
		})
	}
}
