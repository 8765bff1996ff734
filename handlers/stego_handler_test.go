package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stego-studio-backend/audio"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewStegoHandler()
	router.GET("/health", handler.HealthCheck)
	router.POST("/embed", handler.EmbedMessage)
	router.POST("/extract", handler.ExtractMessage)
	router.POST("/capacity", handler.CarrierCapacity)
	return router
}

// carrierWAV builds a mono 16-bit WAV with enough samples for the tests.
func carrierWAV(t *testing.T, sampleCount int) []byte {
	t.Helper()
	samples := make([]int16, sampleCount)
	for i := range samples {
		samples[i] = int16(i%4001 - 2000)
	}
	data, err := audio.NewAudioDecoder().EncodeWAV(samples, 44100)
	require.NoError(t, err)
	return data
}

type formFile struct {
	field    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []formFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestEmbedThenExtract(t *testing.T) {
	router := setupRouter()
	secret := []byte("meet me at the usual place\n")

	body, contentType := multipartBody(t,
		map[string]string{"algorithm": "lsb"},
		[]formFile{
			{"carrier_file", "carrier.wav", carrierWAV(t, 20000)},
			{"secret_file", "note.txt", secret},
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/embed", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "LSB", w.Header().Get("X-Stego-Algorithm"))
	assert.NotEmpty(t, w.Header().Get("X-Stego-PSNR"))
	stegoWAV := w.Body.Bytes()

	body, contentType = multipartBody(t, nil,
		[]formFile{{"stego_file", "carrier_stego.wav", stegoWAV}})

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, secret, w.Body.Bytes())
	assert.Equal(t, "LSB", w.Header().Get("X-Stego-Algorithm"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "decoded.txt")
}

func TestExtractFromPlainAudio(t *testing.T) {
	router := setupRouter()

	body, contentType := multipartBody(t, nil,
		[]formFile{{"stego_file", "plain.wav", carrierWAV(t, 20000)}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEmbedPayloadTooLarge(t *testing.T) {
	router := setupRouter()

	body, contentType := multipartBody(t,
		map[string]string{"algorithm": "dsss"},
		[]formFile{
			{"carrier_file", "carrier.wav", carrierWAV(t, 20000)},
			{"secret_file", "big.bin", bytes.Repeat([]byte{0xAA}, 512)},
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/embed", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbedRejectsBadAlgorithm(t *testing.T) {
	router := setupRouter()

	body, contentType := multipartBody(t,
		map[string]string{"algorithm": "vaporwave"},
		[]formFile{
			{"carrier_file", "carrier.wav", carrierWAV(t, 20000)},
			{"secret_file", "note.txt", []byte("x")},
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/embed", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCarrierCapacity(t *testing.T) {
	router := setupRouter()

	body, contentType := multipartBody(t, nil,
		[]formFile{{"carrier_file", "carrier.wav", carrierWAV(t, 100000)}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/capacity", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "LSB")
	assert.Contains(t, w.Body.String(), "Echo Hiding")
	assert.Contains(t, w.Body.String(), "Phase Coding")
	assert.Contains(t, w.Body.String(), "Spread Spectrum")
}
