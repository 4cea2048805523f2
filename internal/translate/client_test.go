package translate_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/phrasebook/internal/translate"
)

func TestHTTPClient_TranslateText(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       translate.Result
		wantErr    string
	}{
		{
			name:       "translated",
			statusCode: http.StatusOK,
			body:       `{"arabic": "شكرا", "english": "Thank you", "transliteration": "shukran"}`,
			want:       translate.Result{Arabic: "شكرا", English: "Thank you", Transliteration: "shukran"},
		},
		{
			name:       "error message from the server",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error": "Too many requests"}`,
			wantErr:    "Too many requests",
		},
		{
			name:       "error without a message",
			statusCode: http.StatusBadGateway,
			body:       `{}`,
			wantErr:    "Request failed (502)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/translate", r.URL.Path)
				var body struct {
					Text      string `json:"text"`
					Direction string `json:"direction"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "Thank you", body.Text)
				assert.Equal(t, "en_to_ar", body.Direction)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := translate.NewHTTPClient(server.URL)
			defer func() { _ = client.Close() }()

			got, err := client.TranslateText(context.Background(), "Thank you", translate.DirectionEnToAr)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClient_TranslateImage(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       translate.Result
		wantErr    string
	}{
		{
			name:       "translated",
			statusCode: http.StatusOK,
			body:       `{"arabic": "مخرج", "english": "Exit", "transliteration": "makhraj"}`,
			want:       translate.Result{Arabic: "مخرج", English: "Exit", Transliteration: "makhraj"},
		},
		{
			name:       "error without a message",
			statusCode: http.StatusInternalServerError,
			body:       `{"error": ""}`,
			wantErr:    "Image translation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/translate-image", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "ar_to_en", r.FormValue("direction"))

				file, header, err := r.FormFile("image")
				require.NoError(t, err)
				defer func() { _ = file.Close() }()
				assert.Equal(t, "sign.png", header.Filename)
				contents, err := io.ReadAll(file)
				require.NoError(t, err)
				assert.Equal(t, "png bytes", string(contents))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := translate.NewHTTPClient(server.URL)
			defer func() { _ = client.Close() }()

			got, err := client.TranslateImage(context.Background(), translate.Image{
				FileName:    "sign.png",
				ContentType: "image/png",
				Contents:    strings.NewReader("png bytes"),
			}, translate.DirectionArToEn)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirection(t *testing.T) {
	got, err := translate.ParseDirection("ar_to_en")
	require.NoError(t, err)
	assert.Equal(t, translate.DirectionArToEn, got)

	_, err = translate.ParseDirection("mix")
	assert.Error(t, err)
}
