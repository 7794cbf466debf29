// Package types provides type definitions for the records exchanged by the assessment engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// UnknownLabel is used for display fields that could not be extracted.
const UnknownLabel = "Unknown"

// ContactInfo holds the contact fields found in a resume. Nil means not found.
type ContactInfo struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
}

// ResumeRecord is the structured form of one resume document.
type ResumeRecord struct {
	Filename string  `json:"filename"`
	Name     *string `json:"name"`
	ContactInfo
	Skills        []string  `json:"skills"`
	Education     []string  `json:"education"`
	Experience    []string  `json:"experience"`
	Organizations []string  `json:"organizations"`
	Locations     []string  `json:"locations"`
	ParsedAt      time.Time `json:"parsed_at"`
}

// DisplayName returns the extracted name or UnknownLabel.
func (r *ResumeRecord) DisplayName() string {
	if r.Name == nil || *r.Name == "" {
		return UnknownLabel
	}
	return *r.Name
}

// DisplayFilename returns the filename or UnknownLabel.
func (r *ResumeRecord) DisplayFilename() string {
	if r.Filename == "" {
		return UnknownLabel
	}
	return r.Filename
}

// ResumeDocument is a raw resume submitted for analysis.
type ResumeDocument struct {
	Filename string `json:"filename" yaml:"filename"`
	Text     string `json:"text" yaml:"text" validate:"required"`
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
