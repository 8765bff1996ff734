// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stego-studio-backend/audio"
	"stego-studio-backend/models"
	"stego-studio-backend/stego"
)

type StegoHandler struct {
	audioDecoder *audio.AudioDecoder
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{
		audioDecoder: audio.NewAudioDecoder(),
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Audio Steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) EmbedMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	algorithmID, err := parseAlgorithm(c.PostForm("algorithm"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	codec, err := h.buildCodec(c, algorithmID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid echo parameters: %v", err),
		})
		return
	}

	carrierFile, carrierHeader, err := c.Request.FormFile("carrier_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Carrier audio file is required",
		})
		return
	}
	defer carrierFile.Close()

	secretFile, _, err := c.Request.FormFile("secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Secret file is required",
		})
		return
	}
	defer secretFile.Close()

	carrierData, err := io.ReadAll(carrierFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier file: %v", err),
		})
		return
	}

	samples, metadata, tags, err := h.decodeCarrier(carrierHeader.Filename, carrierData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode carrier: %v", err),
		})
		return
	}

	secretData, err := io.ReadAll(secretFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read secret file: %v", err),
		})
		return
	}

	stegoSamples, err := codec.Encode(samples, secretData, algorithmID)
	if err != nil {
		c.JSON(statusForStegoError(err), models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret data: %v", err),
		})
		return
	}

	psnr := audio.CalculatePSNR(samples, stegoSamples)

	wavData, err := h.audioDecoder.EncodeWAV(stegoSamples, metadata.SampleRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego WAV: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(carrierHeader.Filename, filepath.Ext(carrierHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.wav", baseFilename)

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(wavData)))

	// Include metadata about the steganography operation
	c.Header("X-Stego-Algorithm", algorithmID.String())
	c.Header("X-Stego-PSNR", fmt.Sprintf("%.2f", psnr))
	c.Header("X-Stego-Payload-Bytes", fmt.Sprintf("%d", len(secretData)))
	if tags != nil {
		c.Header("X-Carrier-Title", tags.Title)
		c.Header("X-Carrier-Artist", tags.Artist)
	}

	c.Data(http.StatusOK, "audio/wav", wavData)
}

func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	stegoFile, stegoHeader, err := c.Request.FormFile("stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Stego audio file is required",
		})
		return
	}
	defer stegoFile.Close()

	if !isWAVFile(stegoHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Invalid audio file format. Only WAV files are supported for extraction",
		})
		return
	}

	stegoData, err := io.ReadAll(stegoFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read stego audio file: %v", err),
		})
		return
	}

	samples, _, err := h.audioDecoder.DecodeWAV(stegoData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode stego audio: %v", err),
		})
		return
	}

	codec := stego.NewCodec()
	algorithmID, payload, err := codec.Decode(samples)
	if err != nil {
		c.JSON(statusForStegoError(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret data: %v", err),
		})
		return
	}

	extension, description := audio.DetectFileType(payload)
	outputFilename := "decoded" + extension

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(payload)))

	c.Header("X-Stego-Algorithm", algorithmID.String())
	c.Header("X-Stego-Detected-Type", description)

	c.Data(http.StatusOK, "application/octet-stream", payload)
}

func (h *StegoHandler) CarrierCapacity(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32MB limit
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	carrierFile, carrierHeader, err := c.Request.FormFile("carrier_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: "Carrier audio file is required",
		})
		return
	}
	defer carrierFile.Close()

	carrierData, err := io.ReadAll(carrierFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier file: %v", err),
		})
		return
	}

	samples, metadata, _, err := h.decodeCarrier(carrierHeader.Filename, carrierData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode carrier: %v", err),
		})
		return
	}

	codec := stego.NewCodec()
	capacities := make(map[string]int)
	for _, id := range []stego.AlgorithmID{stego.AlgorithmLSB, stego.AlgorithmEcho, stego.AlgorithmPhase, stego.AlgorithmDSSS} {
		capacity, err := codec.Capacity(id, len(samples))
		if err != nil {
			continue
		}
		capacities[id.String()] = capacity
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		Success:      true,
		SampleRate:   metadata.SampleRate,
		Duration:     metadata.Duration,
		TotalSamples: metadata.TotalSamples,
		Capacities:   capacities,
	})
}

func (h *StegoHandler) buildCodec(c *gin.Context, algorithmID stego.AlgorithmID) (*stego.Codec, error) {
	if algorithmID != stego.AlgorithmEcho {
		return stego.NewCodec(), nil
	}

	params := stego.DefaultEchoParams()
	if v := c.PostForm("chunk_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("chunk_size: %v", err)
		}
		params.ChunkSize = n
	}
	if v := c.PostForm("delay0"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("delay0: %v", err)
		}
		params.Delay0 = n
	}
	if v := c.PostForm("delay1"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("delay1: %v", err)
		}
		params.Delay1 = n
	}
	if v := c.PostForm("alpha"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("alpha: %v", err)
		}
		params.Alpha = f
	}
	return stego.NewCodecWithEcho(params)
}

func (h *StegoHandler) decodeCarrier(filename string, data []byte) ([]int16, *models.AudioMetadata, *models.CarrierTags, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		samples, metadata, err := h.audioDecoder.DecodeWAV(data)
		return samples, metadata, nil, err
	case ".mp3":
		samples, metadata, err := h.audioDecoder.DecodeMP3(data)
		if err != nil {
			return nil, nil, nil, err
		}
		return samples, metadata, h.audioDecoder.ReadMP3Tags(data), nil
	}
	return nil, nil, nil, fmt.Errorf("unsupported carrier format %q, only WAV and MP3 are supported", filepath.Ext(filename))
}

func parseAlgorithm(value string) (stego.AlgorithmID, error) {
	switch strings.ToLower(value) {
	case "lsb":
		return stego.AlgorithmLSB, nil
	case "echo":
		return stego.AlgorithmEcho, nil
	case "phase":
		return stego.AlgorithmPhase, nil
	case "dsss":
		return stego.AlgorithmDSSS, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 4 {
		return 0, fmt.Errorf("algorithm must be 1-4 or one of lsb, echo, phase, dsss")
	}
	return stego.AlgorithmID(n), nil
}

// statusForStegoError maps codec errors to HTTP statuses: caller mistakes
// are 4xx, anything unexpected is a 500.
func statusForStegoError(err error) int {
	switch {
	case errors.Is(err, stego.ErrBadMagic),
		errors.Is(err, stego.ErrHeaderCorrupt),
		errors.Is(err, stego.ErrUnknownAlgorithm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, stego.ErrInvalidParameters),
		errors.Is(err, stego.ErrInsufficientCapacity):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isWAVFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".wav"
}
