package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cognicore/phrasenet/pkg/logger"
	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/config"
	"github.com/cognicore/phrasenet/pkg/phrasenet/export"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
	"github.com/cognicore/phrasenet/pkg/phrasenet/loader"
)

func (s *Server) RegisterRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := s.echo.Group("/api")
	api.POST("/graph", s.PostGraphHandler)
	api.GET("/options", s.GetOptionsHandler)
	api.GET("/stopwords", s.GetStopwordsHandler)
}

type postGraphParams struct {
	Text           string  `json:"text"`
	Format         string  `json:"format" validate:"omitempty,oneof=text html jsonl"`
	RelationType   string  `json:"relation_type" validate:"omitempty,oneof=window sentence relation-phrase"`
	WindowSize     *int    `json:"window_size" validate:"omitempty,min=1"`
	RelationPhrase *string `json:"relation_phrase" validate:"omitempty,max=200"`
	UseStopwords   *bool   `json:"use_stopwords"`
	MinEdgeWeight  *int    `json:"min_edge_weight" validate:"omitempty,min=0"`
	TopN           *int    `json:"top_n" validate:"omitempty,min=0"`
	SidebarSize    int     `json:"sidebar_size" validate:"min=0,max=1000"`
}

func (p *postGraphParams) options(base phrasenet.Options) phrasenet.Options {
	if p.RelationType != "" {
		base.RelationType = phrasenet.RelationType(p.RelationType)
	}
	if p.WindowSize != nil {
		base.WindowSize = *p.WindowSize
	}
	if p.RelationPhrase != nil {
		base.RelationPhrase = *p.RelationPhrase
	}
	if p.UseStopwords != nil {
		base.UseStopwords = *p.UseStopwords
	}
	if p.MinEdgeWeight != nil {
		base.MinEdgeWeight = *p.MinEdgeWeight
	}
	if p.TopN != nil {
		base.TopN = *p.TopN
	}
	return base
}

type postGraphResponse struct {
	export.Snapshot
	TopNodes []phrasenet.Node `json:"top_nodes"`
}

func (s *Server) PostGraphHandler(c echo.Context) error {
	params := new(postGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	if s.cfg.MaxInputBytes > 0 && len(params.Text) > s.cfg.MaxInputBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "Input text too large"})
	}

	format, _ := loader.ParseFormat(params.Format)
	text, err := loader.Read(strings.NewReader(params.Text), format)
	if err != nil || strings.TrimSpace(text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": internalerr.ErrNoInput.Error()})
	}

	opts := params.options(s.defaults)
	if err := config.Validate(opts); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res, err := s.build(c.Request().Context(), text, opts)
	if err != nil {
		logger.Warn("Graph construction aborted", "err", err, "bytes", len(text))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Graph construction timed out"})
	}

	logger.Debug("Graph built",
		"relation", res.Options.RelationType,
		"sentences", res.Stats.Sentences,
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
	)

	sidebar := params.SidebarSize
	if sidebar == 0 {
		sidebar = phrasenet.DefaultSidebarSize
	}

	return c.JSON(http.StatusOK, postGraphResponse{
		Snapshot: export.NewSnapshot(res),
		TopNodes: res.Graph.TopNodes(sidebar),
	})
}

// build runs the pipeline under the configured wall-clock budget. The
// pipeline has no suspension points, so an expired run is abandoned rather
// than interrupted.
func (s *Server) build(ctx context.Context, text string, opts phrasenet.Options) (phrasenet.Result, error) {
	if s.cfg.BuildTimeout <= 0 {
		return s.builder.Run(text, opts), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.BuildTimeout)
	defer cancel()

	done := make(chan phrasenet.Result, 1)
	go func() {
		done <- s.builder.Run(text, opts)
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return phrasenet.Result{}, ctx.Err()
	}
}

func (s *Server) GetOptionsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"defaults":       s.defaults,
		"relation_types": phrasenet.RelationTypes,
	})
}

func (s *Server) GetStopwordsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"stopwords": s.builder.Stoplist().All(),
	})
}
