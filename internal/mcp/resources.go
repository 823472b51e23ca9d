// ABOUTME: MCP resource implementations for readiness scores.
// ABOUTME: Provides readiness://history/recent and readiness://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/readiness/internal/models"
	"github.com/harperreed/readiness/internal/widget"
)

func (s *Server) registerResources() {
	// readiness://history/recent - last week of scores, newest first
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://history/recent",
		Name:        "Recent Readiness Scores",
		Description: "Readiness scores for the last week, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// readiness://today - today's score and category
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "readiness://today",
		Name:        "Today's Readiness",
		Description: "Today's readiness score and category",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	to := models.Today()
	from := to.AddDays(-(widget.HistoryLength - 1))
	scores, err := s.store.GetScoresRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	latest, err := s.store.LatestScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest score: %w", err)
	}
	if latest == nil {
		return jsonResource("readiness://history/recent", map[string]string{
			"message": "No scores yet. Run the recalculate tool.",
		})
	}

	return jsonResource("readiness://history/recent", widget.SnapshotFrom(*latest, scores))
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	score, err := s.store.GetScore(ctx, models.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to read score: %w", err)
	}
	if score == nil {
		return jsonResource("readiness://today", map[string]string{
			"message": "No score for today yet. Run the recalculate tool.",
		})
	}
	return jsonResource("readiness://today", score)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
