// AngelaMos | 2026
// entity.go

package record

import (
	"time"
)

// Record is one row of the analytical dataset. Every data column is
// nullable; impact is free text even though it reads as a score.
type Record struct {
	ID          int64      `db:"id"           json:"id"`
	EndYear     *string    `db:"end_year"     json:"end_year"     validate:"omitempty,max=10"`
	Intensity   *int       `db:"intensity"    json:"intensity"`
	Sector      *string    `db:"sector"       json:"sector"       validate:"omitempty,max=100"`
	Topic       *string    `db:"topic"        json:"topic"        validate:"omitempty,max=100"`
	Insight     *string    `db:"insight"      json:"insight"`
	URL         *string    `db:"url"          json:"url"`
	Region      *string    `db:"region"       json:"region"       validate:"omitempty,max=100"`
	StartYear   *string    `db:"start_year"   json:"start_year"   validate:"omitempty,max=10"`
	Impact      *string    `db:"impact"       json:"impact"`
	Added       *time.Time `db:"added"        json:"added"`
	Published   *time.Time `db:"published"    json:"published"`
	Country     *string    `db:"country"      json:"country"      validate:"omitempty,max=100"`
	Relevance   *int       `db:"relevance"    json:"relevance"`
	Pestle      *string    `db:"pestle"       json:"pestle"       validate:"omitempty,max=100"`
	Source      *string    `db:"source"       json:"source"`
	Title       *string    `db:"title"        json:"title"`
	Likelihood  *int       `db:"likelihood"   json:"likelihood"`
	DateCreated time.Time  `db:"date_created" json:"date_created"`
	DateUpdated time.Time  `db:"date_updated" json:"date_updated"`
}

// Field names a column of the records table.
type Field string

const (
	FieldID         Field = "id"
	FieldEndYear    Field = "end_year"
	FieldIntensity  Field = "intensity"
	FieldSector     Field = "sector"
	FieldTopic      Field = "topic"
	FieldInsight    Field = "insight"
	FieldURL        Field = "url"
	FieldRegion     Field = "region"
	FieldStartYear  Field = "start_year"
	FieldImpact     Field = "impact"
	FieldAdded      Field = "added"
	FieldPublished  Field = "published"
	FieldCountry    Field = "country"
	FieldRelevance  Field = "relevance"
	FieldPestle     Field = "pestle"
	FieldSource     Field = "source"
	FieldTitle      Field = "title"
	FieldLikelihood Field = "likelihood"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindTime
)

var fieldKinds = map[Field]fieldKind{
	FieldID:         kindInt,
	FieldEndYear:    kindText,
	FieldIntensity:  kindInt,
	FieldSector:     kindText,
	FieldTopic:      kindText,
	FieldInsight:    kindText,
	FieldURL:        kindText,
	FieldRegion:     kindText,
	FieldStartYear:  kindText,
	FieldImpact:     kindText,
	FieldAdded:      kindTime,
	FieldPublished:  kindTime,
	FieldCountry:    kindText,
	FieldRelevance:  kindInt,
	FieldPestle:     kindText,
	FieldSource:     kindText,
	FieldTitle:      kindText,
	FieldLikelihood: kindInt,
}

func (f Field) valid() bool {
	_, ok := fieldKinds[f]
	return ok
}

func (f Field) kind() fieldKind {
	return fieldKinds[f]
}

func (r *Record) text(f Field) *string {
	switch f {
	case FieldEndYear:
		return r.EndYear
	case FieldSector:
		return r.Sector
	case FieldTopic:
		return r.Topic
	case FieldInsight:
		return r.Insight
	case FieldURL:
		return r.URL
	case FieldRegion:
		return r.Region
	case FieldStartYear:
		return r.StartYear
	case FieldImpact:
		return r.Impact
	case FieldCountry:
		return r.Country
	case FieldPestle:
		return r.Pestle
	case FieldSource:
		return r.Source
	case FieldTitle:
		return r.Title
	}
	return nil
}

func (r *Record) integer(f Field) *int {
	switch f {
	case FieldID:
		id := int(r.ID)
		return &id
	case FieldIntensity:
		return r.Intensity
	case FieldRelevance:
		return r.Relevance
	case FieldLikelihood:
		return r.Likelihood
	}
	return nil
}

func (r *Record) timestamp(f Field) *time.Time {
	switch f {
	case FieldAdded:
		return r.Added
	case FieldPublished:
		return r.Published
	}
	return nil
}

func (r *Record) isNull(f Field) bool {
	switch f.kind() {
	case kindInt:
		return r.integer(f) == nil
	case kindTime:
		return r.timestamp(f) == nil
	default:
		return r.text(f) == nil
	}
}

// SWOTMapping translates a SWOT category to the PESTLE value it is derived
// from. Keys are lower case.
var SWOTMapping = map[string]string{
	"strength":    "Economic",
	"weakness":    "Social",
	"opportunity": "Technological",
	"threat":      "Political",
}

var SWOTCategories = []string{"Strength", "Weakness", "Opportunity", "Threat"}
