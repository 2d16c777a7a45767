package video_catalog

import (
	"context"
	"errors"
	"fmt"

	"lolstreamsearch/lib/dto"
)

var (
	ErrNotFound     = errors.New("video document not found")
	ErrUnknownField = errors.New("unknown document field")
)

// Store persists video documents
type Store interface {
	Create(ctx context.Context, doc *dto.VideoDocument) error
	Get(ctx context.Context, id string) (*dto.VideoDocument, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	// Filter returns documents matching every field. Scalar fields match any of the given
	// values exactly, list fields must contain all of them.
	Filter(ctx context.Context, filters map[string][]string) ([]dto.VideoDocument, error)
	// Distinct returns the sorted set of values seen for field across all documents
	Distinct(ctx context.Context, field string) ([]string, error)
}

type fieldKind int

const (
	scalarField fieldKind = iota
	listField
)

// documentFields are the JSON fields of dto.VideoDocument that can be filtered on
var documentFields = map[string]fieldKind{
	"ytid":               scalarField,
	"timestamp":          scalarField,
	"title":              scalarField,
	"videoUrl":           scalarField,
	"champion":           scalarField,
	"enemyChampion":      scalarField,
	"lane":               scalarField,
	"lolVersion":         scalarField,
	"streamer":           scalarField,
	"isActive":           scalarField,
	"teamChampions":      listField,
	"enemyTeamChampions": listField,
	"runes":              listField,
	"championItems":      listField,
}

func lookupField(field string) (fieldKind, error) {
	kind, ok := documentFields[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return kind, nil
}
