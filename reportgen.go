package reportgen

import (
	"github.com/mroizo75/hmsnova-reportgen/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Labels = api.Labels
type Document = api.Document
type PageOrientation = api.PageOrientation

type ReportRequest = api.ReportRequest
type Section = api.Section
type Block = api.Block
type Company = api.Company

type Heading = api.Heading
type KeyValue = api.KeyValue
type Paragraph = api.Paragraph
type Table = api.Table
type Image = api.Image
type PieChart = api.PieChart
type Slice = api.Slice
type Signature = api.Signature
type Checklist = api.Checklist
type ChecklistGroup = api.ChecklistGroup
type ChecklistItem = api.ChecklistItem
type Stats = api.Stats
type Stat = api.Stat
type Cover = api.Cover
type Spacer = api.Spacer
type PageBreak = api.PageBreak
type Status = api.Status

type SafetyRound = api.SafetyRound
type RoundItem = api.RoundItem
type Finding = api.Finding
type JobSafetyAnalysis = api.JobSafetyAnalysis
type Hazard = api.Hazard
type Measure = api.Measure
type Participant = api.Participant
type Photo = api.Photo
type RiskLevel = api.RiskLevel

type Theme = api.Theme
type Color = api.Color
type Fetcher = api.Fetcher
type FetcherFunc = api.FetcherFunc

func New(opts ...Option) *Generator             { return api.New(opts...) }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }
func DefaultLabels() Labels                     { return api.DefaultLabels() }
func NorwegianLabels() Labels                   { return api.NorwegianLabels() }
func Validate(req *ReportRequest) error         { return api.Validate(req) }
func ParseStatus(s string) Status               { return api.ParseStatus(s) }
func DefaultTheme() Theme                       { return api.DefaultTheme() }
func ParseColor(s string) (Color, bool)         { return api.ParseColor(s) }

var (
	WithPageSize         = api.WithPageSize
	WithMargins          = api.WithMargins
	WithPageOrientation  = api.WithPageOrientation
	WithPageSizeA4       = api.WithPageSizeA4
	WithPageSizeLetter   = api.WithPageSizeLetter
	WithDebug            = api.WithDebug
	WithTitle            = api.WithTitle
	WithAuthor           = api.WithAuthor
	WithSubject          = api.WithSubject
	WithKeywords         = api.WithKeywords
	WithCreator          = api.WithCreator
	WithTheme            = api.WithTheme
	WithLabels           = api.WithLabels
	WithFetcher          = api.WithFetcher
	WithImageTimeout     = api.WithImageTimeout
	WithImageConcurrency = api.WithImageConcurrency
	WithClock            = api.WithClock
	WithLogger           = api.WithLogger
	WithBackend          = api.WithBackend

	ErrInputIncomplete      = api.ErrInputIncomplete
	ErrSerializationFailure = api.ErrSerializationFailure
)

const (
	MimeTypePDF = api.MimeTypePDF

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape

	StatusNone      = api.StatusNone
	StatusOK        = api.StatusOK
	StatusDeviation = api.StatusDeviation
	StatusNA        = api.StatusNA

	RiskUnassessed = api.RiskUnassessed
	RiskLow        = api.RiskLow
	RiskMedium     = api.RiskMedium
	RiskHigh       = api.RiskHigh
)
