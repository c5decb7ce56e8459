package urlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	for _, tc := range []struct {
		name     string
		base     string
		opts     Options
		wantURL  string
		wantRest Options
	}{
		{
			name:    "no options",
			base:    "https://stream.twitter.com/1/statuses/sample.json",
			wantURL: "https://stream.twitter.com/1/statuses/sample.json",
		},
		{
			name: "count",
			base: "https://stream.twitter.com/1/statuses/firehose.json",
			opts: Options{{Name: "count", Value: -50}},
			wantURL: "https://stream.twitter.com/1/statuses/firehose.json" +
				"?count=-50",
		},
		{
			name: "delimited",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{{Name: "delimited", Value: 10}},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?delimited=10",
		},
		{
			name: "follow",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{{Name: "follow", Value: []int{1, 2, 3}}},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?follow=1,2,3",
		},
		{
			name: "track",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{{Name: "track", Value: []string{"go", "rust"}}},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?track=go,rust",
		},
		{
			name: "locations",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{{Name: "locations", Value: []Location{{-122.75, 36.8, -121.75, 37.8}}}},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?locations=-122.75,36.8,-121.75,37.8",
		},
		{
			name: "multiple options preserve input order",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{
				{Name: "track", Value: []string{"go"}},
				{Name: "count", Value: 5},
			},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?track=go&count=5",
		},
		{
			name: "unrecognized options are returned as residual",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{
				{Name: "track", Value: []string{"go"}},
				{Name: "stall_warnings", Value: "true"},
			},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json" +
				"?track=go",
			wantRest: Options{{Name: "stall_warnings", Value: "true"}},
		},
		{
			name: "wrong value type for recognized name falls through to residual",
			base: "https://stream.twitter.com/1/statuses/filter.json",
			opts: Options{{Name: "count", Value: "not-an-int"}},
			wantURL: "https://stream.twitter.com/1/statuses/filter.json",
			wantRest: Options{{Name: "count", Value: "not-an-int"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gotURL, gotRest := Build(tc.base, tc.opts)
			assert.Equal(t, tc.wantURL, gotURL)
			assert.Equal(t, tc.wantRest, gotRest)
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	opts := Options{
		{Name: "track", Value: []string{"go", "rust"}},
		{Name: "count", Value: 100},
		{Name: "other", Value: "passthrough"},
	}
	url1, rest1 := Build("https://stream.twitter.com/1/statuses/filter.json", opts)
	url2, rest2 := Build("https://stream.twitter.com/1/statuses/filter.json", opts)
	assert.Equal(t, url1, url2)
	assert.Equal(t, rest1, rest2)
}
