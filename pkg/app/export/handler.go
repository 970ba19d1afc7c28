package export

import (
	"fmt"
	"io"
	"os"
	"time"

	sinks "github.com/deploymenttheory/go-opkeychain/internal/export"
	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/services"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// Handle unlocks the keychain, decrypts every item and writes them to the sink
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	kc, err := ctx.OpenKeychain(req.Target)
	if err != nil {
		return nil, err
	}
	defer kc.Lock()

	ctx.Progress("Decrypting items...", 40)
	recovered, err := services.NewRecoveryService(ctx.Logger).RecoverAll(ctx, kc, services.RecoverOptions{
		Workers:    ctx.Workers,
		SkipFailed: ctx.SkipFailed,
	})
	if err != nil {
		return nil, app.WrapError("failed to recover items", err)
	}

	ctx.Progress("Writing export...", 80)
	sink, closeOut, err := openSink(ctx, req)
	if err != nil {
		return nil, err
	}
	writeErr := sink.Write(recovered)
	closeErr := sink.Close()
	if err := closeOut(); err != nil && closeErr == nil {
		closeErr = err
	}
	if writeErr != nil {
		return nil, app.NewError(app.ErrCodeInternal, "failed to write export", writeErr)
	}
	if closeErr != nil {
		return nil, app.NewError(app.ErrCodeInternal, "failed to finish export", closeErr)
	}

	failed := services.CountFailed(recovered)
	response := &Response{
		Path:       kc.Path(),
		OutputPath: req.OutputPath,
		Format:     req.Format,
		Exported:   len(recovered) - failed,
		Failed:     failed,
		Duration:   time.Since(startTime),
	}

	ctx.Progress("Complete", 100)
	ctx.Log(fmt.Sprintf("Exported %d items to %s", response.Exported, response.OutputPath))
	return response, nil
}

// openSink creates the sink for req and a function releasing its output file
func openSink(ctx *app.Context, req *Request) (interfaces.ItemSink, func() error, error) {
	noop := func() error { return nil }

	if req.Format == sinks.FormatSQLite {
		if req.Overwrite {
			for _, suffix := range []string{"-wal", "-shm"} {
				if err := os.Remove(req.OutputPath + suffix); err != nil && !os.IsNotExist(err) {
					return nil, nil, app.NewError(app.ErrCodeInternal, "failed to replace output file", err)
				}
			}
		}
		file, err := createOutput(req)
		if err != nil {
			return nil, nil, err
		}
		file.Close()
		sink, err := sinks.NewSQLite(req.OutputPath)
		if err != nil {
			return nil, nil, app.NewError(app.ErrCodeInternal, "failed to create sqlite export", err)
		}
		return sink, noop, nil
	}

	var out io.Writer = ctx.Out
	closeOut := noop
	if req.OutputPath != "-" {
		file, err := createOutput(req)
		if err != nil {
			return nil, nil, err
		}
		out = file
		closeOut = file.Close
	}

	sink, err := sinks.New(req.Format, out)
	if err != nil {
		closeOut()
		return nil, nil, app.NewError(app.ErrCodeInvalidInput, "failed to create export", err)
	}
	return sink, closeOut, nil
}

// createOutput creates a fresh owner-only output file. An existing file is
// only replaced when Overwrite is set; it is removed first so the new file
// never inherits the old permissions.
func createOutput(req *Request) (*os.File, error) {
	if req.Overwrite {
		if err := os.Remove(req.OutputPath); err != nil && !os.IsNotExist(err) {
			return nil, app.NewError(app.ErrCodeInternal, "failed to replace output file", err)
		}
	}
	file, err := os.OpenFile(req.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if os.IsExist(err) {
		return nil, app.NewError(app.ErrCodeInvalidInput, "output file exists: "+req.OutputPath+" (use --force to overwrite)", nil)
	}
	if err != nil {
		return nil, app.NewError(app.ErrCodeInternal, "failed to create output file", err)
	}
	return file, nil
}
