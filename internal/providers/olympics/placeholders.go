// Package olympics holds the Olympic ice hockey stages that are not served by ESPN or
// TheSportsDB: the results-page scrape and the sources with no integration yet.
package olympics

import "github.com/preston-bernstein/scoreboard-service/internal/providers"

const (
	OlympicsComName = "olympics.com"
	IIHFName        = "iihf"
	WikipediaName   = "wikipedia-finals"
)

// NewOlympicsCom returns the olympics.com API stage, which has no integration and yields nothing.
func NewOlympicsCom() providers.Provider { return providers.NewPlaceholder(OlympicsComName) }

// NewIIHF returns the IIHF stage, which has no integration and yields nothing.
func NewIIHF() providers.Provider { return providers.NewPlaceholder(IIHFName) }

// NewWikipediaFinals returns the Wikipedia finals stage, which has no integration and yields nothing.
func NewWikipediaFinals() providers.Provider { return providers.NewPlaceholder(WikipediaName) }
