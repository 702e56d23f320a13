package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultPageSize    = 30
	DefaultMaxResults  = 90
	DefaultTimeout     = 2 * time.Minute
	DefaultCallTimeout = 30 * time.Second
)

// Config is the immutable configuration of a Pipeline.
type Config struct {
	Roots        []Root
	PageSize     int // result blocks per published page
	MaxResults   int // accepted-count ceiling
	MaxDepth     int
	Match        MatchStrategy
	Presentation Presentation
	Timeout      time.Duration // whole search
	CallTimeout  time.Duration // each storage or publisher call
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Match == "" {
		c.Match = MatchStrict
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	c.Presentation = c.Presentation.WithDefaults()
	return c
}

// Pipeline runs searches. It holds no per-search state and is safe for
// concurrent use.
type Pipeline struct {
	cfg       Config
	storage   Storage
	publisher Publisher
	searcher  *RootSearcher
	renderer  *Renderer
	paginator *Paginator
	logger    *slog.Logger
}

// New creates a Pipeline. A nil logger uses slog.Default.
func New(storage Storage, publisher Publisher, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Pipeline{
		cfg:       cfg,
		storage:   storage,
		publisher: publisher,
		searcher:  NewRootSearcher(storage, cfg.CallTimeout),
		renderer:  NewRenderer(cfg.Presentation, cfg.Match, cfg.PageSize, cfg.MaxResults, logger),
		paginator: NewPaginator(publisher, cfg.Presentation.PageTitle, cfg.CallTimeout),
		logger:    logger,
	}
}

// Search runs a query and returns the reply for the chat layer.
func (p *Pipeline) Search(ctx context.Context, query string) (Reply, error) {
	s, err := p.Run(ctx, query)
	if err != nil {
		return Reply{}, err
	}
	return s.Reply, nil
}

// Run executes one search and returns its finished session.
func (p *Pipeline) Run(ctx context.Context, query string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	s := newSession(NewAncestryResolver(p.storage, p.cfg.MaxDepth, p.cfg.CallTimeout))
	log := p.logger.With("session", s.ID)

	s.Filter = ParseQuery(query)
	log.Info("search started", "query", s.Filter.Query, "type", s.Filter.Type, "tokens", len(s.Filter.Tokens))

	if err := p.collect(ctx, s, log); err != nil {
		log.Error("search failed", "state", s.State, "error", err)
		return nil, err
	}

	if s.State == StateCeilingReached {
		log.Warn("result ceiling reached", "max_results", p.cfg.MaxResults)
		s.Pages = nil
		s.current = PageBuffer{}
		s.State = StateDone
		s.Reply = Reply{Text: p.cfg.Presentation.TooMany}
		return s, nil
	}

	if len(s.Pages) == 0 {
		s.State = StateDone
		s.Reply = Reply{Text: p.cfg.Presentation.NotFound}
		log.Info("search finished", "results", 0)
		return s, nil
	}

	s.State = StatePublishing
	published, err := p.paginator.Publish(ctx, s.Pages)
	if err != nil {
		log.Error("search failed", "state", s.State, "error", err)
		return nil, err
	}
	s.Published = published
	s.State = StateDone
	s.Reply = Reply{
		Text: p.cfg.Presentation.summary(s.Count),
		Action: &Action{
			Label: p.cfg.Presentation.ButtonLabel,
			URL:   p.publisher.PageURL(published[0].ID),
		},
	}
	log.Info("search finished", "results", s.Count, "pages", len(published))
	return s, nil
}

// collect searches every root in order and renders the accepted entities,
// stopping at the ceiling.
func (p *Pipeline) collect(ctx context.Context, s *Session, log *slog.Logger) error {
	for i, root := range p.cfg.Roots {
		s.State = StateSearching
		entities, err := p.searcher.Search(ctx, root, s.Filter)
		if err != nil {
			return err
		}
		log.Debug("root searched", "root", i, "name", root.Name, "entities", len(entities))

		s.State = StateRendering
		hit, err := p.renderer.Render(ctx, s, root, entities)
		if err != nil {
			if !errors.Is(err, ErrBackendQuery) {
				err = fmt.Errorf("%w: %w", ErrBackendQuery, err)
			}
			return err
		}
		if hit {
			s.State = StateCeilingReached
			return nil
		}
	}
	p.renderer.Flush(s)
	s.State = StateExhausted
	return nil
}
