package downloader

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adrianliechti/wenku/pkg/output"
	"github.com/adrianliechti/wenku/pkg/progress"
	"github.com/adrianliechti/wenku/pkg/text"
	"github.com/adrianliechti/wenku/pkg/wenku"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Downloader struct {
	client *wenku.Client
	output output.Provider

	logger *slog.Logger
}

type Result struct {
	ID    string
	Title string

	// Location of the created directory as reported by the output provider
	Path string

	Pages int

	Text    bool
	TextErr error
}

func New(client *wenku.Client, output output.Provider, options ...Option) (*Downloader, error) {
	if client == nil || output == nil {
		return nil, errors.New("missing client or output")
	}

	d := &Downloader{
		client: client,
		output: output,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(d)
	}

	return d, nil
}

// Download fetches the document referenced by input, a viewer url or a bare
// id, and stores its page images and text in a directory named after the
// document title.
//
// A missing id yields wenku.ErrNoID. Failures of the metadata or image
// downloads abort the run, as does cancellation of ctx; a failed text download
// is logged and reported in Result.TextErr.
func (d *Downloader) Download(ctx context.Context, input string) (*Result, error) {
	id, ok := wenku.ParseID(input)

	if !ok {
		return nil, wenku.ErrNoID
	}

	logger := d.logger.With("run", uuid.NewString(), "doc", id)

	infoCtx, stage := progress.Start(ctx, logger, "fetching document info")
	info, err := d.client.Info(infoCtx, id)
	stage.Done(err)

	if err != nil {
		return nil, err
	}

	title := text.Filename(info.Title())

	if title == "" {
		title = id
	}

	location, err := d.output.Mkdir(ctx, title)

	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:    id,
		Title: title,
		Path:  location,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pages, err := d.writePages(gctx, logger, info, title)
		result.Pages = pages

		return err
	})

	g.Go(func() error {
		err := d.writeText(gctx, logger, id, title)

		if err != nil {
			logger.Warn("document text not saved", "error", err)
		}

		result.Text = err == nil
		result.TextErr = err

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// an interrupted run is not a document without text
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("document saved", "path", location, "pages", result.Pages, "text", result.Text)

	return result, nil
}

func (d *Downloader) writePages(ctx context.Context, logger *slog.Logger, info *wenku.Info, dir string) (int, error) {
	ctx, stage := progress.Start(ctx, logger, "fetching images")

	count, err := func() (int, error) {
		var count int

		for page, err := range d.client.Pages(ctx, info) {
			if err != nil {
				return count, err
			}

			if err := d.output.Write(ctx, dir, page.Name, page.Data); err != nil {
				return count, err
			}

			count++
		}

		return count, nil
	}()

	stage.Done(err)

	return count, err
}

func (d *Downloader) writeText(ctx context.Context, logger *slog.Logger, id, dir string) error {
	ctx, stage := progress.Start(ctx, logger, "fetching text")

	err := func() error {
		content, err := d.client.Text(ctx, id)

		if err != nil {
			return err
		}

		return d.output.Write(ctx, dir, dir+".txt", []byte(content))
	}()

	stage.Done(err)

	return err
}
