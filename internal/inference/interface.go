package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	Translate(ctx context.Context, params TranslateRequest) (Translation, error)
	TranslateImage(ctx context.Context, params ImageTranslateRequest) (Translation, error)
}

// Direction is the language pair of a translation, e.g. "en_to_ar"
type Direction string

const (
	DirectionEnToAr Direction = "en_to_ar"
	DirectionArToEn Direction = "ar_to_en"
)

type TranslateRequest struct {
	Text      string    `json:"text" validate:"required,max=500"`
	Direction Direction `json:"direction" validate:"required,oneof=en_to_ar ar_to_en"`
}

// ImageTranslateRequest holds a photo of a sign, a menu or a note
type ImageTranslateRequest struct {
	Contents    []byte
	ContentType string
	Direction   Direction
}

// Translation is the phrase in both languages and the Arabic in Latin letters
type Translation struct {
	Arabic          string `json:"arabic"`
	English         string `json:"english"`
	Transliteration string `json:"transliteration"`
}
