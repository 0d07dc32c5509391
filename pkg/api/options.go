package api

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mroizo75/hmsnova-reportgen/internal/images"
	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/pagination"
	"github.com/mroizo75/hmsnova-reportgen/internal/report"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
)

// Options represents configuration options for the report generator
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Debug lowers the log level to debug and outlines the content area
	Debug bool

	// Document metadata. An empty Title uses the report title and an empty
	// Author the company name.
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string

	Theme  style.Theme
	Labels Labels

	// Image source and limits
	Fetcher          images.Fetcher
	ImageTimeout     time.Duration
	ImageConcurrency int

	// Clock stamps the footer and the filename
	Clock func() time.Time
	// Logger is used when the context carries none
	Logger *zerolog.Logger
	// Backend serializes the page plan
	Backend Backend
}

// Labels are every fixed string printed by the generator
type Labels struct {
	Blocks layout.Labels
	Footer pagination.FooterLabels
	Report report.Labels
}

// DefaultLabels returns English labels
func DefaultLabels() Labels {
	return Labels{
		Blocks: layout.DefaultLabels(),
		Footer: pagination.DefaultFooterLabels(),
		Report: report.DefaultLabels(),
	}
}

// NorwegianLabels returns the labels of the Norwegian web application
func NorwegianLabels() Labels {
	return Labels{
		Blocks: layout.Labels{
			ChartTotal:      "Totalt",
			StatusOK:        "OK",
			StatusDeviation: "Avvik",
			StatusNA:        "Ikke relevant",
		},
		Footer: pagination.FooterLabels{
			Generated:  "Generert",
			PageOf:     "Side %d av %d",
			TimeFormat: "02.01.2006 15:04",
		},
		Report: report.NorwegianLabels(),
	}
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	page := pagination.DefaultOptions()
	return Options{
		PageWidth:       page.PageWidth,
		PageHeight:      page.PageHeight,
		PageOrientation: PageOrientationPortrait,

		MarginTop:    page.MarginTop,
		MarginRight:  page.MarginRight,
		MarginBottom: page.MarginBottom,
		MarginLeft:   page.MarginLeft,

		Creator: "hmsnova-reportgen",

		Theme:  style.DefaultTheme(),
		Labels: DefaultLabels(),

		ImageTimeout:     images.DefaultTimeout,
		ImageConcurrency: 4,

		Clock: time.Now,
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(pagination.PageSizeA4.Width, pagination.PageSizeA4.Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(pagination.PageSizeLetter.Width, pagination.PageSizeLetter.Height)
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCreator sets the document creator
func WithCreator(creator string) Option {
	return func(o *Options) {
		o.Creator = creator
	}
}

// WithTheme sets the colours and type sizes
func WithTheme(theme style.Theme) Option {
	return func(o *Options) {
		o.Theme = theme
	}
}

// WithLabels sets the printed strings
func WithLabels(labels Labels) Option {
	return func(o *Options) {
		o.Labels = labels
	}
}

// WithFetcher sets where image bytes come from
func WithFetcher(f images.Fetcher) Option {
	return func(o *Options) {
		o.Fetcher = f
	}
}

// WithImageTimeout bounds each image fetch
func WithImageTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ImageTimeout = d
	}
}

// WithImageConcurrency sets how many images are prepared at once
func WithImageConcurrency(n int) Option {
	return func(o *Options) {
		o.ImageConcurrency = n
	}
}

// WithClock sets the time source for footers and filenames
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

// WithLogger sets the logger used when the context carries none
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = &logger
	}
}

// WithBackend replaces the PDF backend
func WithBackend(b Backend) Option {
	return func(o *Options) {
		o.Backend = b
	}
}
