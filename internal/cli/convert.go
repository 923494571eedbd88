package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/matzehuels/poetryreqs/pkg/deps/python"
)

// stdoutPath as the output sends requirements to stdout.
const stdoutPath = "-"

// convertOpts holds the arguments of the root command.
type convertOpts struct {
	manifest string // pyproject.toml to read
	output   string // requirements file to write, or stdoutPath
}

// runConvert converts opts.manifest and reports the result on w. When the
// output is stdout, the requirements go to w and no confirmation is printed.
func runConvert(ctx context.Context, w io.Writer, opts convertOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debug("Reading manifest", "path", opts.manifest)

	prog := newProgress(logger)

	var (
		res *python.Result
		err error
	)
	if opts.output == stdoutPath {
		res, err = python.ConvertTo(opts.manifest, w)
	} else {
		res, err = python.Convert(opts.manifest, opts.output)
	}
	if err != nil {
		return err
	}

	logger.Debug("Loaded manifest", "project", res.Manifest.Name, "dependencies", len(res.Manifest.Dependencies))
	for _, name := range res.Skipped {
		logger.Debug("Skipped runtime constraint", "name", name)
	}
	prog.done(fmt.Sprintf("Converted %d dependencies", len(res.Lines)))

	if res.Output != "" {
		printSuccess(w, "Requirements written to %s", res.Output)
	}
	return nil
}
