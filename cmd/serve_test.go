package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placelift/place-audit/internal/model"
)

func TestValidateRequest_PlaceURLMode(t *testing.T) {
	req := model.AnalyzeRequest{
		Input: model.AnalyzeInput{Mode: model.ModePlaceURL, PlaceURL: "https://m.place.naver.com/place/1/home"},
	}
	fields := validateRequest(&req)
	assert.Empty(t, fields)

	// Unset options are defaulted in place.
	assert.Equal(t, model.PlanFree, req.Options.Plan)
	assert.Equal(t, model.DepthStandard, req.Options.Depth)
	assert.Equal(t, "ko", req.Options.Language)
}

func TestValidateRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		req   model.AnalyzeRequest
		field string
	}{
		{
			name:  "mode required",
			req:   model.AnalyzeRequest{},
			field: "input.mode",
		},
		{
			name:  "unknown mode",
			req:   model.AnalyzeRequest{Input: model.AnalyzeInput{Mode: "magic"}},
			field: "input.mode",
		},
		{
			name:  "place url required",
			req:   model.AnalyzeRequest{Input: model.AnalyzeInput{Mode: model.ModePlaceURL}},
			field: "input.place_url",
		},
		{
			name:  "name required",
			req:   model.AnalyzeRequest{Input: model.AnalyzeInput{Mode: model.ModeBizSearch}},
			field: "input.name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validateRequest(&tt.req)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateRequest_BadOptions(t *testing.T) {
	req := model.AnalyzeRequest{
		Input:   model.AnalyzeInput{Mode: model.ModePlaceURL, PlaceURL: "https://m.place.naver.com/place/1/home"},
		Options: model.AnalyzeOptions{Plan: "platinum", Depth: "extreme"},
	}
	fields := validateRequest(&req)
	assert.Contains(t, fields, "options.plan")
	assert.Contains(t, fields, "options.depth")
}

func TestRequestFromFlags(t *testing.T) {
	analyzeFlags.url = "https://m.place.naver.com/place/1/home"
	analyzeFlags.plan = "pro"
	analyzeFlags.depth = "deep"
	defer func() { analyzeFlags.url = ""; analyzeFlags.plan = "free"; analyzeFlags.depth = "standard" }()

	req, err := requestFromFlags()
	assert.NoError(t, err)
	assert.Equal(t, model.ModePlaceURL, req.Input.Mode)
	assert.Equal(t, model.PlanPro, req.Options.Plan)
	assert.Equal(t, model.DepthDeep, req.Options.Depth)
}

func TestRequestFromFlags_RequiresInput(t *testing.T) {
	analyzeFlags.url = ""
	analyzeFlags.name = ""
	analyzeFlags.plan = "free"
	analyzeFlags.depth = "standard"

	_, err := requestFromFlags()
	assert.Error(t, err)
}
