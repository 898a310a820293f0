package palimpsest

import (
	"github.com/cfwren/palimpsest/format"
	"github.com/cfwren/palimpsest/tagfilter"
)

// ExtractOptions holds configuration for text extraction.
type ExtractOptions struct {
	// Format override (format.Unknown means auto-detect)
	format format.Format

	// Tag pairs stripped from the extracted text, in registration order
	tags []tagfilter.Tag

	// Normalize collapses blank-line runs and trims line ends in the
	// final text
	normalize bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		format:    format.Unknown, // auto-detect
		tags:      nil,
		normalize: false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		format:    o.format,
		normalize: o.normalize,
	}

	// Deep copy tag slice
	if o.tags != nil {
		newOpts.tags = make([]tagfilter.Tag, len(o.tags))
		copy(newOpts.tags, o.tags)
	}

	return newOpts
}
