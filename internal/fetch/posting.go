package fetch

import (
	"context"
	"errors"

	"github.com/jonathan/assessment-engine/internal/logging"
	"go.uber.org/zap"
)

var errEmptyPosting = errors.New("no text found in job posting")

// PostingFetcher downloads job postings and extracts their description text.
type PostingFetcher struct {
	options  *Options
	renderer Renderer
	logger   *zap.Logger
}

// PostingOption configures a PostingFetcher.
type PostingOption func(*PostingFetcher)

// WithOptions sets the HTTP options.
func WithOptions(opts *Options) PostingOption {
	return func(f *PostingFetcher) {
		if opts != nil {
			f.options = opts
		}
	}
}

// WithRenderer enables browser rendering for pages whose static HTML is too short.
func WithRenderer(r Renderer) PostingOption {
	return func(f *PostingFetcher) {
		f.renderer = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) PostingOption {
	return func(f *PostingFetcher) {
		f.logger = logger
	}
}

// NewPostingFetcher creates a PostingFetcher.
func NewPostingFetcher(opts ...PostingOption) *PostingFetcher {
	f := &PostingFetcher{options: DefaultOptions()}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.Component(f.logger, "fetch")
	return f
}

// Fetch downloads rawURL and returns the posting text. Pages that yield too
// little static text are rendered with the configured Renderer, if any.
func (f *PostingFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	board := DetectBoard(rawURL)
	log := f.logger.With(zap.String("url", rawURL), zap.String("board", board.Name))

	result, err := URL(ctx, rawURL, f.options)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(result.HTML, board.ContentSelectors, board.Noise()...)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	if ShouldUseBrowser(text) && f.renderer != nil {
		log.Info("static page too short, rendering in browser", zap.Int("chars", len(text)))
		html, renderErr := f.renderer(ctx, rawURL)
		if renderErr != nil {
			log.Warn("browser rendering failed, using static text", zap.Error(renderErr))
		} else if rendered, extractErr := ExtractMainText(html, board.ContentSelectors, board.Noise()...); extractErr == nil && len(rendered) > len(text) {
			result.HTML = html
			text = rendered
		}
	}

	if text == "" {
		return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: errEmptyPosting}
	}
	result.Text = text
	log.Debug("fetched job posting", zap.Int("chars", len(text)))
	return result, nil
}
