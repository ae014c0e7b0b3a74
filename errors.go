package md2site

import (
	"errors"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/markdown"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown    = errors.New("markdown content cannot be empty")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrPoolClosed       = errors.New("converter pool is closed")
)

// Errors raised by the conversion stages, re-exported so callers can match
// them with errors.Is without importing internal packages.
var (
	// Markdown content errors.
	ErrTokenization = markdown.ErrTokenization
	ErrRender       = markdown.ErrRender
	ErrTitleMissing = pipeline.ErrTitleMissing

	// Rendering setup errors.
	ErrHTMLConversion      = pipeline.ErrHTMLConversion
	ErrUnknownEngine       = pipeline.ErrUnknownEngine
	ErrInvalidBasePath     = pipeline.ErrInvalidBasePath
	ErrTemplatePlaceholder = pipeline.ErrTemplatePlaceholder

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)
