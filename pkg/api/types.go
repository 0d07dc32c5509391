package api

import (
	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/images"
	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/report"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
)

// Request types accepted by the generator
type (
	ReportRequest = layout.Request
	Section       = layout.Section
	Block         = layout.Block
	Company       = layout.Company
)

// Content blocks
type (
	Heading        = layout.Heading
	KeyValue       = layout.KeyValue
	Paragraph      = layout.Paragraph
	Table          = layout.Table
	Image          = layout.Image
	PieChart       = layout.PieChart
	Slice          = layout.Slice
	Signature      = layout.Signature
	Checklist      = layout.Checklist
	ChecklistGroup = layout.ChecklistGroup
	ChecklistItem  = layout.ChecklistItem
	Stats          = layout.Stats
	Stat           = layout.Stat
	Cover          = layout.Cover
	Spacer         = layout.Spacer
	PageBreak      = layout.PageBreak
	Status         = layout.Status
)

// Checklist item statuses
const (
	StatusNone      = layout.StatusNone
	StatusOK        = layout.StatusOK
	StatusDeviation = layout.StatusDeviation
	StatusNA        = layout.StatusNA
)

// ParseStatus accepts the status spellings used by the web application
func ParseStatus(s string) Status { return layout.ParseStatus(s) }

// Report snapshots composed by GenerateSafetyRound and
// GenerateJobSafetyAnalysis
type (
	SafetyRound       = report.SafetyRound
	RoundItem         = report.RoundItem
	Finding           = report.Finding
	JobSafetyAnalysis = report.JobSafetyAnalysis
	Hazard            = report.Hazard
	Measure           = report.Measure
	Participant       = report.Participant
	Photo             = report.Photo
	RiskLevel         = report.RiskLevel
)

// Risk levels of a hazard
const (
	RiskUnassessed = report.RiskUnassessed
	RiskLow        = report.RiskLow
	RiskMedium     = report.RiskMedium
	RiskHigh       = report.RiskHigh
)

// Appearance and image sources
type (
	Theme       = style.Theme
	Color       = draw.Color
	Fetcher     = images.Fetcher
	FetcherFunc = images.FetcherFunc
)

// DefaultTheme returns the colours and sizes of the web application
func DefaultTheme() Theme { return style.DefaultTheme() }

// ParseColor reads #rgb, #rrggbb and rgb(r, g, b) colours
func ParseColor(s string) (Color, bool) { return style.ParseColor(s) }
