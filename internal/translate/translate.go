// Package translate turns English into Arabic and back, from text or from a photo,
// through the phrasebook server.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
)

//go:generate mockgen -source=translate.go -destination=../mocks/translate/mock_client.go -package=mock_translate

type Direction string

const (
	DirectionEnToAr Direction = "en_to_ar"
	DirectionArToEn Direction = "ar_to_en"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionEnToAr, DirectionArToEn:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q: must be en_to_ar or ar_to_en", s)
}

type Result struct {
	Arabic          string `json:"arabic"`
	English         string `json:"english"`
	Transliteration string `json:"transliteration"`
}

// Image is a photo to translate the text of.
type Image struct {
	FileName    string
	ContentType string
	Contents    io.Reader
}

// Client calls the translation endpoints.
type Client interface {
	TranslateText(ctx context.Context, text string, direction Direction) (Result, error)
	TranslateImage(ctx context.Context, image Image, direction Direction) (Result, error)
}

var (
	ErrEmptyText     = errors.New("nothing to translate")
	ErrNotImage      = errors.New("the file is not an image")
	ErrQuotaExceeded = errors.New("the monthly image translation limit has been reached")
	ErrStaleResponse = errors.New("a newer translation request has been made")
)
