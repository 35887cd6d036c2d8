package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/usage"
)

func (d Deps) print(_ context.Context, value any, _ any) (any, error) {
	a := argsOf(value)
	text := a.String("text")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	switch {
	case a.String("stream") == "stderr":
		_, err := io.WriteString(d.Err, text)
		return nil, err
	case a.Bool("pager"):
		d.Out.Pager(text)
		return nil, nil
	default:
		_, err := d.Out.Printf("%s", text)
		return nil, err
	}
}

// read resolves to the file content as a string. A missing file raises
// a failure with code ENOENT. Reading stops when ctx is cancelled.
func (d Deps) read(ctx context.Context, value any, _ any) (any, error) {
	path := argsOf(value).String("path")
	if path == "" {
		return nil, intent.Fail(map[string]any{"code": "EINVAL"}, "read: missing path")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readAll(ctx, d.Stdin)
	} else {
		data, err = d.ReadFile(path)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fileFailure(path, err)
	}
	return string(data), nil
}

type readResult struct {
	data []byte
	err  error
}

// readAll returns as soon as ctx is done. The pending read is left to
// finish on its own; the process is exiting by then.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	done := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.data, res.err
	}
}

// write resolves to the number of bytes written.
func (d Deps) write(_ context.Context, value any, _ any) (any, error) {
	a := argsOf(value)
	path := a.String("path")
	if path == "" {
		return nil, intent.Fail(map[string]any{"code": "EINVAL"}, "write: missing path")
	}
	data := a.String("data")
	if err := d.WriteFile(path, []byte(data), 0644); err != nil {
		return nil, fileFailure(path, err)
	}
	return len(data), nil
}

func fileFailure(path string, err error) *intent.Failure {
	code := "EIO"
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = "ENOENT"
	case errors.Is(err, fs.ErrPermission):
		code = "EACCES"
	}
	msg := fmt.Sprintf("%s: %v", path, err)
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		msg = fmt.Sprintf("%s: %v", path, pathErr.Err)
	}
	return intent.Fail(map[string]any{"code": code, "path": path}, msg).Wrap(err)
}

// missingFile recovers ENOENT failures by reporting the path on stderr.
func (d Deps) missingFile(_ context.Context, value any, _ any) (any, error) {
	f := intent.AsFailure(asError(value))
	path, _ := f.Extra["path"].(string)
	if path == "" {
		path = "file"
	}
	_, err := fmt.Fprintf(d.Err, "%s: %s: no such file or directory\n", usage.ProgramName, path)
	return nil, err
}

func asError(value any) error {
	if err, ok := value.(error); ok {
		return err
	}
	return fmt.Errorf("%v", value)
}
